package query

import (
	"context"
	"errors"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PUBLISHED GRADES QUERY
// Студенческий взгляд на зачётку: только опубликованные оценки.
// Черновики не попадают в результат ни при каких условиях - чтение идёт
// через GetPublishedByStudent, единственный разрешённый путь для
// студенческих дашбордов.
// ══════════════════════════════════════════════════════════════════════════════

// GetPublishedGradesQuery содержит параметры запроса.
type GetPublishedGradesQuery struct {
	// StudentID - студент, чья зачётка запрашивается.
	StudentID string

	// CourseID - опциональный фильтр по одному курсу (пустой = все курсы).
	CourseID string
}

// Validate проверяет корректность параметров запроса.
func (q *GetPublishedGradesQuery) Validate() error {
	if q.StudentID == "" {
		return errors.New("student id is required")
	}
	return nil
}

// GradeEntryDTO - одна опубликованная оценка студента.
type GradeEntryDTO struct {
	// AssessmentID - мероприятие.
	AssessmentID string `json:"assessment_id"`

	// AssessmentName - название мероприятия.
	AssessmentName string `json:"assessment_name"`

	// Type - тип мероприятия.
	Type gradebook.AssessmentType `json:"type"`

	// MarksObtained - набранные баллы; nil, если ещё не оценено
	// (опубликованная, но не оцененная запись видна как "pending").
	MarksObtained *float64 `json:"marks_obtained"`

	// MaxMarks - максимум баллов.
	MaxMarks float64 `json:"max_marks"`

	// Percent - процент набранного; nil, если не оценено.
	Percent *float64 `json:"percent"`

	// WeightPct - вес мероприятия в текущем балле курса.
	WeightPct float64 `json:"weight_pct"`

	// GradedAt - время последнего выставления баллов.
	GradedAt time.Time `json:"graded_at"`
}

// CourseGradesDTO - оценки студента по одному курсу.
type CourseGradesDTO struct {
	// CourseID - курс.
	CourseID string `json:"course_id"`

	// CourseCode - код курса.
	CourseCode string `json:"course_code"`

	// CourseName - название курса.
	CourseName string `json:"course_name"`

	// Credits - кредитные часы курса.
	Credits int `json:"credits"`

	// Entries - опубликованные оценки по мероприятиям курса.
	Entries []GradeEntryDTO `json:"entries"`

	// CurrentGrade - взвешенный текущий балл курса; nil, когда ни одно
	// мероприятие ещё не оценено и не опубликовано.
	CurrentGrade *float64 `json:"current_grade"`

	// Letter - буквенная оценка по текущему баллу; пустая при nil балле.
	Letter gradebook.LetterGrade `json:"letter,omitempty"`
}

// GetPublishedGradesResult содержит результат запроса.
type GetPublishedGradesResult struct {
	// Courses - курсы в порядке записи студента.
	Courses []CourseGradesDTO `json:"courses"`
}

// GetPublishedGradesHandler обрабатывает запросы зачётки студента.
type GetPublishedGradesHandler struct {
	studentRepo    identity.StudentRepository
	courseRepo     course.Repository
	assessmentRepo gradebook.AssessmentRepository
	gradeRepo      gradebook.GradeRepository
}

// NewGetPublishedGradesHandler создаёт новый обработчик.
func NewGetPublishedGradesHandler(
	studentRepo identity.StudentRepository,
	courseRepo course.Repository,
	assessmentRepo gradebook.AssessmentRepository,
	gradeRepo gradebook.GradeRepository,
) *GetPublishedGradesHandler {
	return &GetPublishedGradesHandler{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		assessmentRepo: assessmentRepo,
		gradeRepo:      gradeRepo,
	}
}

// Handle выполняет запрос зачётки студента.
func (h *GetPublishedGradesHandler) Handle(ctx context.Context, query GetPublishedGradesQuery) (*GetPublishedGradesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetPublishedGrades", shared.ErrValidation, err.Error(), err)
	}

	student, err := h.studentRepo.GetByID(ctx, query.StudentID)
	if err != nil {
		return nil, shared.WrapError("query", "GetPublishedGrades", shared.ErrNotFound, "student not found", err)
	}

	courseIDs := student.EnrolledCourseIDs
	if query.CourseID != "" {
		if !student.IsEnrolledIn(query.CourseID) {
			return nil, shared.NewDomainError("query", "GetPublishedGrades", shared.ErrValidation,
				"student is not enrolled in the requested course")
		}
		courseIDs = []string{query.CourseID}
	}

	courses, err := h.courseRepo.GetByIDs(ctx, courseIDs)
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

	result := &GetPublishedGradesResult{
		Courses: make([]CourseGradesDTO, 0, len(courses)),
	}
	for _, c := range courses {
		dto, err := h.buildCourseGrades(ctx, c, gradesByAssessment)
		if err != nil {
			return nil, err
		}
		result.Courses = append(result.Courses, dto)
	}
	return result, nil
}

// buildCourseGrades собирает оценки и текущий балл одного курса.
func (h *GetPublishedGradesHandler) buildCourseGrades(
	ctx context.Context,
	c *course.Course,
	gradesByAssessment map[string]*gradebook.Grade,
) (CourseGradesDTO, error) {
	assessments, err := h.assessmentRepo.GetByCourse(ctx, c.ID)
	if err != nil {
		return CourseGradesDTO{}, err
	}

	dto := CourseGradesDTO{
		CourseID:   c.ID,
		CourseCode: c.Code,
		CourseName: c.Name,
		Credits:    c.Credits.Int(),
		Entries:    make([]GradeEntryDTO, 0, len(assessments)),
	}

	courseGrades := make([]*gradebook.Grade, 0, len(assessments))
	for _, a := range assessments {
		g, ok := gradesByAssessment[a.ID]
		if !ok {
			continue
		}
		courseGrades = append(courseGrades, g)

		entry := GradeEntryDTO{
			AssessmentID:   a.ID,
			AssessmentName: a.Name,
			Type:           a.Type,
			MarksObtained:  g.MarksObtained,
			MaxMarks:       a.MaxMarks,
			WeightPct:      a.WeightPct,
			GradedAt:       g.GradedAt,
		}
		if g.IsGraded() && a.MaxMarks > 0 {
			pct := *g.MarksObtained / a.MaxMarks * 100
			entry.Percent = &pct
		}
		dto.Entries = append(dto.Entries, entry)
	}

	dto.CurrentGrade = gradebook.ComputeCurrentGrade(assessments, courseGrades)
	if dto.CurrentGrade != nil {
		dto.Letter = gradebook.LetterFromPercent(*dto.CurrentGrade)
	}
	return dto, nil
}
