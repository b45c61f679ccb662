package query

import (
	"context"
	"errors"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT COURSES QUERY
// Возвращает курсы студента строго в порядке записи на них -
// порядок insertion-order гарантирован доменной моделью студента.
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentCoursesQuery содержит параметры запроса курсов студента.
type GetStudentCoursesQuery struct {
	// StudentID - студент, чьи курсы запрашиваются.
	StudentID string
}

// Validate проверяет корректность параметров запроса.
func (q *GetStudentCoursesQuery) Validate() error {
	if q.StudentID == "" {
		return errors.New("student id is required")
	}
	return nil
}

// CourseDTO - DTO курса.
type CourseDTO struct {
	// ID - внутренний идентификатор.
	ID string `json:"id"`

	// Code - код курса, например "CS101".
	Code string `json:"code"`

	// Name - название курса.
	Name string `json:"name"`

	// ProfessorID - владелец курса.
	ProfessorID string `json:"professor_id"`

	// Semester - семестр, например "Fall 2026".
	Semester string `json:"semester"`

	// Department - кафедра.
	Department string `json:"department"`

	// Credits - кредитные часы (вес курса в GPA).
	Credits int `json:"credits"`

	// CreatedAt - время создания курса.
	CreatedAt time.Time `json:"created_at"`
}

// GetStudentCoursesResult содержит результат запроса.
type GetStudentCoursesResult struct {
	// Courses - курсы в порядке записи студента.
	Courses []CourseDTO `json:"courses"`

	// TotalCredits - суммарные кредитные часы.
	TotalCredits int `json:"total_credits"`
}

// GetStudentCoursesHandler обрабатывает запросы курсов студента.
type GetStudentCoursesHandler struct {
	studentRepo identity.StudentRepository
	courseRepo  course.Repository
}

// NewGetStudentCoursesHandler создаёт новый обработчик.
func NewGetStudentCoursesHandler(
	studentRepo identity.StudentRepository,
	courseRepo course.Repository,
) *GetStudentCoursesHandler {
	return &GetStudentCoursesHandler{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

// Handle выполняет запрос курсов студента.
func (h *GetStudentCoursesHandler) Handle(ctx context.Context, query GetStudentCoursesQuery) (*GetStudentCoursesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetStudentCourses", shared.ErrValidation, err.Error(), err)
	}

	student, err := h.studentRepo.GetByID(ctx, query.StudentID)
	if err != nil {
		return nil, shared.WrapError("query", "GetStudentCourses", shared.ErrNotFound, "student not found", err)
	}

	// GetByIDs сохраняет порядок входного списка, поэтому порядок
	// записи студента доезжает до результата без пересортировки.
	courses, err := h.courseRepo.GetByIDs(ctx, student.EnrolledCourseIDs)
	if err != nil {
		return nil, err
	}

	result := &GetStudentCoursesResult{
		Courses: make([]CourseDTO, 0, len(courses)),
	}
	for _, c := range courses {
		result.Courses = append(result.Courses, toCourseDTO(c))
		result.TotalCredits += c.Credits.Int()
	}
	return result, nil
}

// toCourseDTO преобразует доменный курс в DTO.
func toCourseDTO(c *course.Course) CourseDTO {
	return CourseDTO{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		ProfessorID: c.ProfessorID,
		Semester:    c.Semester,
		Department:  c.Department,
		Credits:     c.Credits.Int(),
		CreatedAt:   c.CreatedAt,
	}
}
