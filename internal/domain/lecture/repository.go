package lecture

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции хранения лекций.
type Repository interface {
	// Create создаёт новую лекцию.
	Create(ctx context.Context, lecture *Lecture) error

	// GetByID возвращает лекцию по ID.
	// Возвращает ErrLectureNotFound, если не найдена.
	GetByID(ctx context.Context, id string) (*Lecture, error)

	// Update сохраняет изменение статуса лекции.
	// Возвращает ErrLectureNotFound, если не найдена.
	Update(ctx context.Context, lecture *Lecture) error

	// GetByCourse возвращает лекции курса по возрастанию даты.
	GetByCourse(ctx context.Context, courseID string) ([]*Lecture, error)

	// GetByCourses возвращает лекции всех указанных курсов
	// по возрастанию даты.
	GetByCourses(ctx context.Context, courseIDs []string) ([]*Lecture, error)

	// GetCompletedByCourse возвращает завершённые лекции курса
	// по возрастанию даты.
	GetCompletedByCourse(ctx context.Context, courseID string) ([]*Lecture, error)

	// CountByCourse возвращает количество лекций курса.
	CountByCourse(ctx context.Context, courseID string) (int, error)
}
