package query

import (
	"context"
	"errors"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET COURSE LECTURES QUERY
// Возвращает лекции курса по возрастанию даты с опциональным
// фильтром по статусу.
// ══════════════════════════════════════════════════════════════════════════════

// GetCourseLecturesQuery содержит параметры запроса лекций курса.
type GetCourseLecturesQuery struct {
	// CourseID - курс, чьи лекции запрашиваются.
	CourseID string

	// Status - фильтр по статусу (пустой = все статусы).
	Status lecture.Status
}

// Validate проверяет корректность параметров запроса.
func (q *GetCourseLecturesQuery) Validate() error {
	if q.CourseID == "" {
		return errors.New("course id is required")
	}
	if q.Status != "" && !q.Status.IsValid() {
		return errors.New("unknown lecture status")
	}
	return nil
}

// LectureDTO - DTO лекции.
type LectureDTO struct {
	// ID - внутренний идентификатор.
	ID string `json:"id"`

	// CourseID - курс лекции.
	CourseID string `json:"course_id"`

	// Title - тема лекции.
	Title string `json:"title"`

	// Date - дата и время проведения.
	Date time.Time `json:"date"`

	// DurationMinutes - длительность в минутах.
	DurationMinutes int `json:"duration_minutes"`

	// Topics - темы для оценивания в отзывах.
	Topics []string `json:"topics"`

	// Status - текущий статус жизненного цикла.
	Status lecture.Status `json:"status"`
}

// GetCourseLecturesResult содержит результат запроса.
type GetCourseLecturesResult struct {
	// Lectures - лекции по возрастанию даты.
	Lectures []LectureDTO `json:"lectures"`

	// CompletedCount - количество завершённых лекций курса.
	CompletedCount int `json:"completed_count"`
}

// GetCourseLecturesHandler обрабатывает запросы лекций курса.
type GetCourseLecturesHandler struct {
	lectureRepo lecture.Repository
	courseRepo  course.Repository
}

// NewGetCourseLecturesHandler создаёт новый обработчик.
func NewGetCourseLecturesHandler(
	lectureRepo lecture.Repository,
	courseRepo course.Repository,
) *GetCourseLecturesHandler {
	return &GetCourseLecturesHandler{
		lectureRepo: lectureRepo,
		courseRepo:  courseRepo,
	}
}

// Handle выполняет запрос лекций курса.
func (h *GetCourseLecturesHandler) Handle(ctx context.Context, query GetCourseLecturesQuery) (*GetCourseLecturesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetCourseLectures", shared.ErrValidation, err.Error(), err)
	}

	if _, err := h.courseRepo.GetByID(ctx, query.CourseID); err != nil {
		return nil, shared.WrapError("query", "GetCourseLectures", shared.ErrNotFound, "course not found", err)
	}

	lectures, err := h.lectureRepo.GetByCourse(ctx, query.CourseID)
	if err != nil {
		return nil, err
	}

	result := &GetCourseLecturesResult{
		Lectures: make([]LectureDTO, 0, len(lectures)),
	}
	for _, l := range lectures {
		if l.IsCompleted() {
			result.CompletedCount++
		}
		if query.Status != "" && l.Status != query.Status {
			continue
		}
		result.Lectures = append(result.Lectures, toLectureDTO(l))
	}
	return result, nil
}

// toLectureDTO преобразует доменную лекцию в DTO.
func toLectureDTO(l *lecture.Lecture) LectureDTO {
	return LectureDTO{
		ID:              l.ID,
		CourseID:        l.CourseID,
		Title:           l.Title,
		Date:            l.Date,
		DurationMinutes: l.DurationMinutes,
		Topics:          l.Topics,
		Status:          l.Status,
	}
}
