// Package identity содержит доменную модель преподавателей и студентов.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// RollNumber представляет номер зачётной книжки студента.
type RollNumber string

// IsValid проверяет корректность номера.
func (r RollNumber) IsValid() bool {
	s := string(r)
	return len(s) >= 2 && len(s) <= 30 && !strings.ContainsAny(s, " \t\n\r")
}

// String возвращает строковое представление номера.
func (r RollNumber) String() string {
	return string(r)
}

// Role определяет роль пользователя в системе.
type Role string

const (
	// RoleProfessor - преподаватель, владеет курсами и оценками.
	RoleProfessor Role = "professor"
	// RoleStudent - студент, записывается на курсы и оставляет отзывы.
	RoleStudent Role = "student"
)

// IsValid проверяет, что роль корректна.
func (r Role) IsValid() bool {
	return r == RoleProfessor || r == RoleStudent
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidName - невалидное имя.
	ErrInvalidName = errors.New("invalid name: must be 1-100 chars")

	// ErrInvalidDepartment - невалидная кафедра.
	ErrInvalidDepartment = errors.New("invalid department: must be 2-100 chars")

	// ErrInvalidRollNumber - невалидный номер зачётки.
	ErrInvalidRollNumber = errors.New("invalid roll number: must be 2-30 chars without whitespace")

	// ErrProfessorNotFound - преподаватель не найден.
	ErrProfessorNotFound = errors.New("professor not found")

	// ErrStudentNotFound - студент не найден.
	ErrStudentNotFound = errors.New("student not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: PROFESSOR
// ══════════════════════════════════════════════════════════════════════════════

// Professor - преподаватель, владелец курсов и оценок.
// Идентичность неизменна после регистрации (редактирование профиля
// вне ядра системы).
type Professor struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// Name - полное имя.
	Name string

	// Email - нормализованный email, уникален среди преподавателей.
	Email shared.Email

	// Department - кафедра.
	Department string

	// PasswordHash - bcrypt-хеш пароля (пустой, если пароль не задан).
	PasswordHash string

	// CreatedAt - время регистрации.
	CreatedAt time.Time
}

// NewProfessorParams содержит параметры для регистрации преподавателя.
type NewProfessorParams struct {
	ID         string
	Name       string
	Email      string
	Department string
}

// NewProfessor создаёт нового преподавателя с валидацией всех полей.
func NewProfessor(params NewProfessorParams) (*Professor, error) {
	if params.ID == "" {
		return nil, errors.New("professor id is required")
	}

	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 100 {
		return nil, ErrInvalidName
	}

	email, err := shared.NewEmail(params.Email)
	if err != nil {
		return nil, err
	}

	department := strings.TrimSpace(params.Department)
	if len(department) < 2 || len(department) > 100 {
		return nil, ErrInvalidDepartment
	}

	return &Professor{
		ID:         params.ID,
		Name:       name,
		Email:      email,
		Department: department,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// String возвращает строковое представление для логирования.
func (p *Professor) String() string {
	return fmt.Sprintf("Professor{ID: %s, Email: %s, Department: %s}", p.ID, p.Email, p.Department)
}

// Clone создаёт глубокую копию преподавателя.
func (p *Professor) Clone() *Professor {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - студент. Список курсов EnrolledCourseIDs хранится в порядке
// записи на курсы (insertion order) - это порядок выдачи getStudentCourses.
type Student struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// Name - полное имя.
	Name string

	// Email - нормализованный email, уникален среди студентов.
	Email shared.Email

	// RollNumber - номер зачётной книжки.
	RollNumber RollNumber

	// Department - кафедра.
	Department string

	// PasswordHash - bcrypt-хеш пароля (пустой, если пароль не задан,
	// например при массовом импорте).
	PasswordHash string

	// EnrolledCourseIDs - курсы студента в порядке записи.
	EnrolledCourseIDs []string

	// CreatedAt - время регистрации.
	CreatedAt time.Time
}

// NewStudentParams содержит параметры для регистрации студента.
type NewStudentParams struct {
	ID         string
	Name       string
	Email      string
	RollNumber string
	Department string
}

// NewStudent создаёт нового студента с валидацией всех полей.
func NewStudent(params NewStudentParams) (*Student, error) {
	if params.ID == "" {
		return nil, errors.New("student id is required")
	}

	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 100 {
		return nil, ErrInvalidName
	}

	email, err := shared.NewEmail(params.Email)
	if err != nil {
		return nil, err
	}

	roll := RollNumber(strings.TrimSpace(params.RollNumber))
	if !roll.IsValid() {
		return nil, ErrInvalidRollNumber
	}

	department := strings.TrimSpace(params.Department)
	if len(department) < 2 || len(department) > 100 {
		return nil, ErrInvalidDepartment
	}

	return &Student{
		ID:                params.ID,
		Name:              name,
		Email:             email,
		RollNumber:        roll,
		Department:        department,
		EnrolledCourseIDs: make([]string, 0),
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// IsEnrolledIn проверяет членство студента в курсе.
func (s *Student) IsEnrolledIn(courseID string) bool {
	for _, id := range s.EnrolledCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// EnrollIn добавляет курс в конец списка записей студента.
// Возвращает shared.ErrAlreadyEnrolled при повторной записи.
func (s *Student) EnrollIn(courseID string) error {
	if courseID == "" {
		return errors.New("course id is required")
	}
	if s.IsEnrolledIn(courseID) {
		return shared.ErrAlreadyEnrolled
	}
	s.EnrolledCourseIDs = append(s.EnrolledCourseIDs, courseID)
	return nil
}

// String возвращает строковое представление для логирования.
func (s *Student) String() string {
	return fmt.Sprintf(
		"Student{ID: %s, Email: %s, Roll: %s, Courses: %d}",
		s.ID, s.Email, s.RollNumber, len(s.EnrolledCourseIDs),
	)
}

// Clone создаёт глубокую копию студента.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}
	clone := *s
	clone.EnrolledCourseIDs = make([]string, len(s.EnrolledCourseIDs))
	copy(clone.EnrolledCourseIDs, s.EnrolledCourseIDs)
	return &clone
}
