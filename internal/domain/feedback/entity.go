// Package feedback содержит доменную модель отзывов о лекциях.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package feedback

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS & VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// UnderstandingLevel определяет, насколько студент понял лекцию.
type UnderstandingLevel string

const (
	// UnderstandingFully - всё понятно.
	UnderstandingFully UnderstandingLevel = "fully"
	// UnderstandingPartial - понятно частично.
	UnderstandingPartial UnderstandingLevel = "partial"
	// UnderstandingNeedClarity - ничего не понятно, нужны пояснения.
	UnderstandingNeedClarity UnderstandingLevel = "need_clarity"
)

// IsValid проверяет, что уровень понимания корректен.
func (u UnderstandingLevel) IsValid() bool {
	switch u {
	case UnderstandingFully, UnderstandingPartial, UnderstandingNeedClarity:
		return true
	default:
		return false
	}
}

// Score возвращает числовую оценку уровня для агрегации
// (fully = 1.0, partial = 0.5, need_clarity = 0.0).
func (u UnderstandingLevel) Score() float64 {
	switch u {
	case UnderstandingFully:
		return 1.0
	case UnderstandingPartial:
		return 0.5
	default:
		return 0.0
	}
}

// Rating boundaries для оценок тем.
const (
	MinTopicRating = 1
	MaxTopicRating = 5

	// DifficultRatingThreshold - оценка не выше этой считается
	// сигналом "тема сложная" для аналитики.
	DifficultRatingThreshold = 2
)

// TopicRating - оценка студентом одной темы лекции.
type TopicRating struct {
	// Topic - название темы.
	Topic string

	// Rating - оценка понимания темы от 1 (ничего не понял) до 5 (всё ясно).
	Rating int
}

// IsValid проверяет корректность оценки темы.
func (t TopicRating) IsValid() bool {
	return strings.TrimSpace(t.Topic) != "" &&
		t.Rating >= MinTopicRating && t.Rating <= MaxTopicRating
}

// IsDifficult возвращает true, если тема отмечена как сложная.
func (t TopicRating) IsDifficult() bool {
	return t.Rating <= DifficultRatingThreshold
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidUnderstanding - невалидный уровень понимания.
	ErrInvalidUnderstanding = errors.New("invalid understanding level")

	// ErrInvalidTopicRating - невалидная оценка темы.
	ErrInvalidTopicRating = errors.New("invalid topic rating: rating must be 1-5 with non-empty topic")

	// ErrInvalidComment - слишком длинный комментарий.
	ErrInvalidComment = errors.New("invalid comment: must be at most 2000 chars")

	// ErrFeedbackNotFound - отзыв не найден.
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: FEEDBACK
// ══════════════════════════════════════════════════════════════════════════════

// Feedback - отзыв студента о лекции. Ровно один отзыв на пару
// (студент, лекция); после создания отзыв неизменяем (API редактирования
// в ядре нет).
type Feedback struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// LectureID - лекция, о которой отзыв.
	LectureID string

	// StudentID - автор отзыва.
	StudentID string

	// Understanding - общий уровень понимания лекции.
	Understanding UnderstandingLevel

	// TopicRatings - оценки отдельных тем лекции.
	TopicRatings []TopicRating

	// Comment - необязательный свободный комментарий.
	Comment string

	// SubmittedAt - время отправки отзыва.
	SubmittedAt time.Time
}

// NewFeedbackParams содержит параметры для создания отзыва.
type NewFeedbackParams struct {
	ID            string
	LectureID     string
	StudentID     string
	Understanding UnderstandingLevel
	TopicRatings  []TopicRating
	Comment       string
}

// NewFeedback создаёт новый отзыв с валидацией всех полей.
// Проверка "лекция завершена" и уникальность пары (студент, лекция)
// выполняются на уровне приложения и хранилища.
func NewFeedback(params NewFeedbackParams) (*Feedback, error) {
	if params.ID == "" {
		return nil, errors.New("feedback id is required")
	}
	if params.LectureID == "" {
		return nil, errors.New("lecture id is required")
	}
	if params.StudentID == "" {
		return nil, errors.New("student id is required")
	}
	if !params.Understanding.IsValid() {
		return nil, ErrInvalidUnderstanding
	}

	ratings := make([]TopicRating, 0, len(params.TopicRatings))
	for _, r := range params.TopicRatings {
		r.Topic = strings.TrimSpace(r.Topic)
		if !r.IsValid() {
			return nil, ErrInvalidTopicRating
		}
		ratings = append(ratings, r)
	}

	comment := strings.TrimSpace(params.Comment)
	if len(comment) > 2000 {
		return nil, ErrInvalidComment
	}

	return &Feedback{
		ID:            params.ID,
		LectureID:     params.LectureID,
		StudentID:     params.StudentID,
		Understanding: params.Understanding,
		TopicRatings:  ratings,
		Comment:       comment,
		SubmittedAt:   time.Now().UTC(),
	}, nil
}

// DifficultTopics возвращает темы, отмеченные в отзыве как сложные.
func (f *Feedback) DifficultTopics() []string {
	topics := make([]string, 0)
	for _, r := range f.TopicRatings {
		if r.IsDifficult() {
			topics = append(topics, r.Topic)
		}
	}
	return topics
}

// String возвращает строковое представление для логирования.
func (f *Feedback) String() string {
	return fmt.Sprintf(
		"Feedback{ID: %s, Lecture: %s, Student: %s, Understanding: %s}",
		f.ID, f.LectureID, f.StudentID, f.Understanding,
	)
}

// Clone создаёт глубокую копию отзыва.
func (f *Feedback) Clone() *Feedback {
	if f == nil {
		return nil
	}
	clone := *f
	clone.TopicRatings = make([]TopicRating, len(f.TopicRatings))
	copy(clone.TopicRatings, f.TopicRatings)
	return &clone
}
