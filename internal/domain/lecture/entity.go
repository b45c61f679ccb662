// Package lecture содержит доменную модель лекции и её жизненного цикла.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package lecture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status определяет статус лекции в жизненном цикле.
// Переходы строго монотонны вперёд: scheduled → live → completed,
// плюс прямой переход scheduled → completed (ручной бэкфилл).
type Status string

const (
	// StatusScheduled - лекция запланирована.
	StatusScheduled Status = "scheduled"
	// StatusLive - лекция идёт прямо сейчас.
	StatusLive Status = "live"
	// StatusCompleted - лекция завершена, можно оставлять отзывы.
	StatusCompleted Status = "completed"
)

// IsValid проверяет, что статус корректен.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo проверяет допустимость перехода.
// Переходы в то же состояние и назад запрещены.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusLive || next == StatusCompleted
	case StatusLive:
		return next == StatusCompleted
	default:
		return false
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidTitle - невалидное название лекции.
	ErrInvalidTitle = errors.New("invalid lecture title: must be 1-200 chars")

	// ErrInvalidDate - дата лекции не задана.
	ErrInvalidDate = errors.New("invalid lecture date: must be set")

	// ErrInvalidDuration - невалидная длительность.
	ErrInvalidDuration = errors.New("invalid lecture duration: must be 1-600 minutes")

	// ErrInvalidStatus - невалидный статус.
	ErrInvalidStatus = errors.New("invalid lecture status")

	// ErrLectureNotFound - лекция не найдена.
	ErrLectureNotFound = errors.New("lecture not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: LECTURE
// ══════════════════════════════════════════════════════════════════════════════

// Lecture - лекция, принадлежащая одному курсу.
type Lecture struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// CourseID - курс, которому принадлежит лекция.
	CourseID string

	// Title - тема лекции.
	Title string

	// Date - дата и время проведения.
	Date time.Time

	// DurationMinutes - длительность в минутах.
	DurationMinutes int

	// Topics - список тем, по которым студенты ставят оценки в отзывах.
	Topics []string

	// Status - текущий статус жизненного цикла.
	Status Status

	// CreatedAt - время создания записи.
	CreatedAt time.Time

	// UpdatedAt - время последнего перехода статуса.
	UpdatedAt time.Time
}

// NewLectureParams содержит параметры для создания лекции.
type NewLectureParams struct {
	ID              string
	CourseID        string
	Title           string
	Date            time.Time
	DurationMinutes int
	Topics          []string
}

// NewLecture создаёт новую лекцию в статусе scheduled.
func NewLecture(params NewLectureParams) (*Lecture, error) {
	if params.ID == "" {
		return nil, errors.New("lecture id is required")
	}
	if params.CourseID == "" {
		return nil, errors.New("course id is required")
	}

	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, ErrInvalidTitle
	}

	if params.Date.IsZero() {
		return nil, ErrInvalidDate
	}

	if params.DurationMinutes <= 0 || params.DurationMinutes > 600 {
		return nil, ErrInvalidDuration
	}

	topics := make([]string, 0, len(params.Topics))
	for _, t := range params.Topics {
		t = strings.TrimSpace(t)
		if t != "" {
			topics = append(topics, t)
		}
	}

	now := time.Now().UTC()

	return &Lecture{
		ID:              params.ID,
		CourseID:        params.CourseID,
		Title:           title,
		Date:            params.Date.UTC(),
		DurationMinutes: params.DurationMinutes,
		Topics:          topics,
		Status:          StatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// TransitionTo переводит лекцию в новый статус.
// Возвращает shared.ErrIllegalTransition для любого недопустимого перехода,
// включая переход в то же состояние и назад.
func (l *Lecture) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !l.Status.CanTransitionTo(next) {
		return shared.NewDomainError("lecture", "Transition", shared.ErrIllegalTransition,
			fmt.Sprintf("cannot transition from %s to %s", l.Status, next))
	}
	l.Status = next
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// IsCompleted проверяет, завершена ли лекция.
// Только завершённые лекции принимают отзывы и попадают в pending-набор.
func (l *Lecture) IsCompleted() bool {
	return l.Status == StatusCompleted
}

// HasTopic проверяет, входит ли тема в список тем лекции.
func (l *Lecture) HasTopic(topic string) bool {
	for _, t := range l.Topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

// String возвращает строковое представление для логирования.
func (l *Lecture) String() string {
	return fmt.Sprintf(
		"Lecture{ID: %s, Course: %s, Title: %s, Status: %s}",
		l.ID, l.CourseID, l.Title, l.Status,
	)
}

// Clone создаёт глубокую копию лекции.
func (l *Lecture) Clone() *Lecture {
	if l == nil {
		return nil
	}
	clone := *l
	clone.Topics = make([]string, len(l.Topics))
	copy(clone.Topics, l.Topics)
	return &clone
}
