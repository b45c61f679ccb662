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
// GET PENDING FEEDBACK QUERY
// Вычисляет список завершённых лекций, по которым студент ещё не оставил
// отзыв. Набор всегда выводится заново из текущего состояния - никакого
// кеширования или материализации: любая промежуточная копия могла бы
// разойтись с фактами после завершения лекции или отправки отзыва.
// ══════════════════════════════════════════════════════════════════════════════

// GetPendingFeedbackQuery содержит параметры запроса.
type GetPendingFeedbackQuery struct {
	// StudentID - студент, чьи долги по отзывам запрашиваются.
	StudentID string

	// CourseID - опциональный фильтр по одному курсу (пустой = все курсы).
	CourseID string
}

// Validate проверяет корректность параметров запроса.
func (q *GetPendingFeedbackQuery) Validate() error {
	if q.StudentID == "" {
		return errors.New("student id is required")
	}
	return nil
}

// PendingLectureDTO - лекция, ожидающая отзыва студента.
type PendingLectureDTO struct {
	// Lecture - данные лекции.
	Lecture LectureDTO `json:"lecture"`

	// CourseCode - код курса лекции (для отображения).
	CourseCode string `json:"course_code"`

	// CourseName - название курса лекции.
	CourseName string `json:"course_name"`
}

// GetPendingFeedbackResult содержит результат запроса.
type GetPendingFeedbackResult struct {
	// Pending - лекции без отзыва по возрастанию даты.
	Pending []PendingLectureDTO `json:"pending"`

	// CompletedCount - всего завершённых лекций в рассмотренных курсах.
	CompletedCount int `json:"completed_count"`

	// SubmittedCount - сколько из них уже получили отзыв студента.
	SubmittedCount int `json:"submitted_count"`
}

// GetPendingFeedbackHandler обрабатывает запросы долгов по отзывам.
type GetPendingFeedbackHandler struct {
	studentRepo  identity.StudentRepository
	courseRepo   course.Repository
	lectureRepo  lecture.Repository
	feedbackRepo feedback.Repository
}

// NewGetPendingFeedbackHandler создаёт новый обработчик.
func NewGetPendingFeedbackHandler(
	studentRepo identity.StudentRepository,
	courseRepo course.Repository,
	lectureRepo lecture.Repository,
	feedbackRepo feedback.Repository,
) *GetPendingFeedbackHandler {
	return &GetPendingFeedbackHandler{
		studentRepo:  studentRepo,
		courseRepo:   courseRepo,
		lectureRepo:  lectureRepo,
		feedbackRepo: feedbackRepo,
	}
}

// Handle выполняет запрос долгов по отзывам.
func (h *GetPendingFeedbackHandler) Handle(ctx context.Context, query GetPendingFeedbackQuery) (*GetPendingFeedbackResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetPendingFeedback", shared.ErrValidation, err.Error(), err)
	}

	student, err := h.studentRepo.GetByID(ctx, query.StudentID)
	if err != nil {
		return nil, shared.WrapError("query", "GetPendingFeedback", shared.ErrNotFound, "student not found", err)
	}

	courseIDs := student.EnrolledCourseIDs
	if query.CourseID != "" {
		if !student.IsEnrolledIn(query.CourseID) {
			return nil, shared.NewDomainError("query", "GetPendingFeedback", shared.ErrValidation,
				"student is not enrolled in the requested course")
		}
		courseIDs = []string{query.CourseID}
	}

	lectures, err := h.lectureRepo.GetByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	// Набор лекций, по которым отзыв уже есть.
	submitted, err := h.feedbackRepo.GetByStudent(ctx, query.StudentID)
	if err != nil {
		return nil, err
	}
	reviewed := make(map[string]struct{}, len(submitted))
	for _, f := range submitted {
		reviewed[f.LectureID] = struct{}{}
	}

	courseInfo, err := h.courseRepo.GetByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	coursesByID := make(map[string]*course.Course, len(courseInfo))
	for _, c := range courseInfo {
		coursesByID[c.ID] = c
	}

	result := &GetPendingFeedbackResult{
		Pending: make([]PendingLectureDTO, 0),
	}
	for _, l := range lectures {
		if !l.IsCompleted() {
			continue
		}
		result.CompletedCount++
		if _, ok := reviewed[l.ID]; ok {
			result.SubmittedCount++
			continue
		}
		dto := PendingLectureDTO{Lecture: toLectureDTO(l)}
		if c, ok := coursesByID[l.CourseID]; ok {
			dto.CourseCode = c.Code
			dto.CourseName = c.Name
		}
		result.Pending = append(result.Pending, dto)
	}
	return result, nil
}
