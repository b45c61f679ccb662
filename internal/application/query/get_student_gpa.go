package query

import (
	"context"
	"errors"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT GPA QUERY
// Вычисляет GPA студента по 4.0-шкале, взвешенный кредитными часами:
// GPA = Σ(gradePoint · credits) / Σ(credits). Учитываются только курсы
// с вычислимым текущим баллом; курсы без опубликованных оценок не
// участвуют ни в числителе, ни в знаменателе.
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentGPAQuery содержит параметры запроса GPA.
type GetStudentGPAQuery struct {
	// StudentID - студент, чей GPA запрашивается.
	StudentID string
}

// Validate проверяет корректность параметров запроса.
func (q *GetStudentGPAQuery) Validate() error {
	if q.StudentID == "" {
		return errors.New("student id is required")
	}
	return nil
}

// CourseGPAEntryDTO - вклад одного курса в GPA.
type CourseGPAEntryDTO struct {
	// CourseID - курс.
	CourseID string `json:"course_id"`

	// CourseCode - код курса.
	CourseCode string `json:"course_code"`

	// Credits - кредитные часы.
	Credits int `json:"credits"`

	// CurrentGrade - текущий балл курса в процентах.
	CurrentGrade float64 `json:"current_grade"`

	// Letter - буквенная оценка.
	Letter gradebook.LetterGrade `json:"letter"`

	// GradePoint - значение по 4.0-шкале.
	GradePoint float64 `json:"grade_point"`
}

// GetStudentGPAResult содержит результат запроса GPA.
type GetStudentGPAResult struct {
	// GPA - средний балл по 4.0-шкале. Осмыслен только при HasData.
	GPA float64 `json:"gpa"`

	// HasData - есть ли хотя бы один курс с вычислимым баллом.
	// GPA без данных - это отсутствие значения, а не честный ноль:
	// ноль означал бы "круглый двоечник".
	HasData bool `json:"has_data"`

	// Entries - курсы, вошедшие в расчёт.
	Entries []CourseGPAEntryDTO `json:"entries"`

	// ExcludedCount - курсы без опубликованных оценок, исключённые
	// из расчёта.
	ExcludedCount int `json:"excluded_count"`
}

// GetStudentGPAHandler обрабатывает запросы GPA.
type GetStudentGPAHandler struct {
	studentRepo    identity.StudentRepository
	courseRepo     course.Repository
	assessmentRepo gradebook.AssessmentRepository
	gradeRepo      gradebook.GradeRepository
}

// NewGetStudentGPAHandler создаёт новый обработчик GPA.
func NewGetStudentGPAHandler(
	studentRepo identity.StudentRepository,
	courseRepo course.Repository,
	assessmentRepo gradebook.AssessmentRepository,
	gradeRepo gradebook.GradeRepository,
) *GetStudentGPAHandler {
	return &GetStudentGPAHandler{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		assessmentRepo: assessmentRepo,
		gradeRepo:      gradeRepo,
	}
}

// Handle выполняет запрос GPA.
func (h *GetStudentGPAHandler) Handle(ctx context.Context, query GetStudentGPAQuery) (*GetStudentGPAResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetStudentGPA", shared.ErrValidation, err.Error(), err)
	}

	student, err := h.studentRepo.GetByID(ctx, query.StudentID)
	if err != nil {
		return nil, shared.WrapError("query", "GetStudentGPA", shared.ErrNotFound, "student not found", err)
	}

	courses, err := h.courseRepo.GetByIDs(ctx, student.EnrolledCourseIDs)
	if err != nil {
		return nil, err
	}

	published, err := h.gradeRepo.GetPublishedByStudent(ctx, query.StudentID)
	if err != nil {
		return nil, err
	}
	gradesByAssessment := make(map[string]*gradebook.Grade, len(published))
	for _, g := range published {
		gradesByAssessment[g.AssessmentID] = g
	}

	result := &GetStudentGPAResult{
		Entries: make([]CourseGPAEntryDTO, 0, len(courses)),
	}

	var pointSum, creditSum float64
	for _, c := range courses {
		assessments, err := h.assessmentRepo.GetByCourse(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		courseGrades := make([]*gradebook.Grade, 0, len(assessments))
		for _, a := range assessments {
			if g, ok := gradesByAssessment[a.ID]; ok {
				courseGrades = append(courseGrades, g)
			}
		}

		current := gradebook.ComputeCurrentGrade(assessments, courseGrades)
		if current == nil {
			result.ExcludedCount++
			continue
		}

		letter := gradebook.LetterFromPercent(*current)
		point := letter.GradePoint()
		credits := c.Credits.Int()

		pointSum += point * float64(credits)
		creditSum += float64(credits)

		result.Entries = append(result.Entries, CourseGPAEntryDTO{
			CourseID:     c.ID,
			CourseCode:   c.Code,
			Credits:      credits,
			CurrentGrade: *current,
			Letter:       letter,
			GradePoint:   point,
		})
	}

	if creditSum > 0 {
		result.GPA = pointSum / creditSum
		result.HasData = true
	}
	return result, nil
}
