package feedback

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции хранения отзывов.
type Repository interface {
	// Create создаёт новый отзыв.
	// Возвращает shared.ErrDuplicateFeedback, если для пары
	// (студент, лекция) отзыв уже существует.
	Create(ctx context.Context, fb *Feedback) error

	// GetByID возвращает отзыв по ID.
	// Возвращает ErrFeedbackNotFound, если не найден.
	GetByID(ctx context.Context, id string) (*Feedback, error)

	// GetByStudentAndLecture возвращает отзыв пары (студент, лекция).
	// Возвращает ErrFeedbackNotFound, если не найден.
	GetByStudentAndLecture(ctx context.Context, studentID, lectureID string) (*Feedback, error)

	// ExistsByStudentAndLecture проверяет существование отзыва пары.
	ExistsByStudentAndLecture(ctx context.Context, studentID, lectureID string) (bool, error)

	// GetByLecture возвращает все отзывы о лекции.
	GetByLecture(ctx context.Context, lectureID string) ([]*Feedback, error)

	// GetByLectures возвращает все отзывы об указанных лекциях.
	GetByLectures(ctx context.Context, lectureIDs []string) ([]*Feedback, error)

	// GetByStudent возвращает все отзывы студента.
	GetByStudent(ctx context.Context, studentID string) ([]*Feedback, error)

	// CountByStudentInLectures возвращает количество отзывов студента
	// среди указанных лекций (для детектора молчунов).
	CountByStudentInLectures(ctx context.Context, studentID string, lectureIDs []string) (int, error)
}
