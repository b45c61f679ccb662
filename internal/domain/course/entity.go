// Package course содержит доменную модель курса и кодов записи.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package course

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidCourseName - невалидное название курса.
	ErrInvalidCourseName = errors.New("invalid course name: must be 1-150 chars")

	// ErrInvalidCourseCode - невалидный код курса (например, "CS301").
	ErrInvalidCourseCode = errors.New("invalid course code: must be 2-20 chars without whitespace")

	// ErrInvalidSemester - невалидный семестр.
	ErrInvalidSemester = errors.New("invalid semester: must be 1-30 chars")

	// ErrInvalidCredits - невалидное количество кредитов.
	ErrInvalidCredits = errors.New("invalid credits: must be between 1 and 10")

	// ErrCourseNotFound - курс не найден.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCodeCollision - не удалось подобрать уникальный код записи.
	ErrCodeCollision = errors.New("could not generate unique enrollment code")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: COURSE
// ══════════════════════════════════════════════════════════════════════════════

// Course - курс, принадлежащий одному преподавателю.
// Курс никогда не удаляется в ядре (мягкое удаление - забота UI).
// EnrollmentCode уникален среди всех курсов системы.
type Course struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// Code - код курса в каталоге (например, "CS301").
	Code string

	// Name - название курса.
	Name string

	// ProfessorID - владелец курса.
	ProfessorID string

	// Semester - семестр (например, "Fall 2026").
	Semester string

	// Department - кафедра.
	Department string

	// Credits - кредитные часы, вес курса в GPA.
	Credits shared.Credits

	// EnrollmentCode - код самостоятельной записи студентов.
	EnrollmentCode shared.EnrollmentCode

	// CreatedAt - время создания.
	CreatedAt time.Time
}

// NewCourseParams содержит параметры для создания курса.
type NewCourseParams struct {
	ID             string
	Code           string
	Name           string
	ProfessorID    string
	Semester       string
	Department     string
	Credits        int
	EnrollmentCode shared.EnrollmentCode
}

// NewCourse создаёт новый курс с валидацией всех полей.
// Код записи генерируется и проверяется на коллизии на уровне каталога,
// сюда он приходит уже готовым.
func NewCourse(params NewCourseParams) (*Course, error) {
	if params.ID == "" {
		return nil, errors.New("course id is required")
	}
	if params.ProfessorID == "" {
		return nil, errors.New("professor id is required")
	}

	code := strings.TrimSpace(params.Code)
	if len(code) < 2 || len(code) > 20 || strings.ContainsAny(code, " \t\n\r") {
		return nil, ErrInvalidCourseCode
	}

	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 150 {
		return nil, ErrInvalidCourseName
	}

	semester := strings.TrimSpace(params.Semester)
	if len(semester) == 0 || len(semester) > 30 {
		return nil, ErrInvalidSemester
	}

	credits := shared.Credits(params.Credits)
	if !credits.IsValid() {
		return nil, ErrInvalidCredits
	}

	if !params.EnrollmentCode.IsValid() {
		return nil, errors.New("enrollment code is required")
	}

	return &Course{
		ID:             params.ID,
		Code:           code,
		Name:           name,
		ProfessorID:    params.ProfessorID,
		Semester:       semester,
		Department:     strings.TrimSpace(params.Department),
		Credits:        credits,
		EnrollmentCode: params.EnrollmentCode,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// String возвращает строковое представление для логирования.
func (c *Course) String() string {
	return fmt.Sprintf(
		"Course{ID: %s, Code: %s, Credits: %d, EnrollmentCode: %s}",
		c.ID, c.Code, c.Credits, c.EnrollmentCode,
	)
}

// Clone создаёт глубокую копию курса.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
