package query

import (
	"context"
	"errors"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SILENT STUDENTS QUERY
// Находит "молчаливых" студентов курса: записанных, но оставивших не больше
// порогового количества отзывов при наличии завершённых лекций. Это сигнал
// преподавателю, кого курс, возможно, потерял.
// ══════════════════════════════════════════════════════════════════════════════

// GetSilentStudentsQuery содержит параметры запроса.
type GetSilentStudentsQuery struct {
	// CourseID - курс для анализа.
	CourseID string

	// Threshold - студент считается молчаливым, если отправил не больше
	// этого количества отзывов. По умолчанию 0: молчал совсем.
	Threshold int
}

// Validate проверяет корректность параметров запроса.
func (q *GetSilentStudentsQuery) Validate() error {
	if q.CourseID == "" {
		return errors.New("course id is required")
	}
	if q.Threshold < 0 {
		return errors.New("threshold cannot be negative")
	}
	return nil
}

// SilentStudentDTO - молчаливый студент курса.
type SilentStudentDTO struct {
	// StudentID - внутренний идентификатор студента.
	StudentID string `json:"student_id"`

	// Name - полное имя.
	Name string `json:"name"`

	// RollNumber - номер зачётки.
	RollNumber string `json:"roll_number"`

	// FeedbackCount - сколько отзывов студент оставил по завершённым
	// лекциям курса.
	FeedbackCount int `json:"feedback_count"`
}

// GetSilentStudentsResult содержит результат запроса.
type GetSilentStudentsResult struct {
	// Silent - молчаливые студенты в порядке их регистрации.
	Silent []SilentStudentDTO `json:"silent"`

	// EnrolledCount - всего студентов на курсе.
	EnrolledCount int `json:"enrolled_count"`

	// CompletedLectures - количество завершённых лекций курса.
	// При нуле завершённых лекций молчаливых нет по определению.
	CompletedLectures int `json:"completed_lectures"`
}

// GetSilentStudentsHandler обрабатывает запросы молчаливых студентов.
type GetSilentStudentsHandler struct {
	courseRepo   course.Repository
	studentRepo  identity.StudentRepository
	lectureRepo  lecture.Repository
	feedbackRepo feedback.Repository
}

// NewGetSilentStudentsHandler создаёт новый обработчик.
func NewGetSilentStudentsHandler(
	courseRepo course.Repository,
	studentRepo identity.StudentRepository,
	lectureRepo lecture.Repository,
	feedbackRepo feedback.Repository,
) *GetSilentStudentsHandler {
	return &GetSilentStudentsHandler{
		courseRepo:   courseRepo,
		studentRepo:  studentRepo,
		lectureRepo:  lectureRepo,
		feedbackRepo: feedbackRepo,
	}
}

// Handle выполняет запрос молчаливых студентов.
func (h *GetSilentStudentsHandler) Handle(ctx context.Context, query GetSilentStudentsQuery) (*GetSilentStudentsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetSilentStudents", shared.ErrValidation, err.Error(), err)
	}

	if _, err := h.courseRepo.GetByID(ctx, query.CourseID); err != nil {
		return nil, shared.WrapError("query", "GetSilentStudents", shared.ErrNotFound, "course not found", err)
	}

	completed, err := h.lectureRepo.GetCompletedByCourse(ctx, query.CourseID)
	if err != nil {
		return nil, err
	}

	students, err := h.studentRepo.GetEnrolledInCourse(ctx, query.CourseID)
	if err != nil {
		return nil, err
	}

	result := &GetSilentStudentsResult{
		Silent:            make([]SilentStudentDTO, 0),
		EnrolledCount:     len(students),
		CompletedLectures: len(completed),
	}

	// Пока курс не провёл ни одной завершённой лекции, молчать не о чем.
	if len(completed) == 0 {
		return result, nil
	}

	lectureIDs := make([]string, len(completed))
	for i, l := range completed {
		lectureIDs[i] = l.ID
	}

	for _, s := range students {
		count, err := h.feedbackRepo.CountByStudentInLectures(ctx, s.ID, lectureIDs)
		if err != nil {
			return nil, err
		}
		if count <= query.Threshold {
			result.Silent = append(result.Silent, SilentStudentDTO{
				StudentID:     s.ID,
				Name:          s.Name,
				RollNumber:    s.RollNumber.String(),
				FeedbackCount: count,
			})
		}
	}
	return result, nil
}
