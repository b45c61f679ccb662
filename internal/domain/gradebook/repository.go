package gradebook

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// AssessmentRepository определяет операции хранения мероприятий.
type AssessmentRepository interface {
	// Create создаёт новое мероприятие.
	Create(ctx context.Context, assessment *Assessment) error

	// GetByID возвращает мероприятие по ID.
	// Возвращает ErrAssessmentNotFound, если не найдено.
	GetByID(ctx context.Context, id string) (*Assessment, error)

	// GetByCourse возвращает мероприятия курса в порядке создания.
	GetByCourse(ctx context.Context, courseID string) ([]*Assessment, error)

	// GetByIDs возвращает мероприятия по списку ID.
	// Неизвестные ID пропускаются.
	GetByIDs(ctx context.Context, ids []string) ([]*Assessment, error)

	// CountByCourse возвращает количество мероприятий курса.
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

// GradeRepository определяет операции хранения оценок.
type GradeRepository interface {
	// Create создаёт новую оценку.
	Create(ctx context.Context, grade *Grade) error

	// Update сохраняет изменение баллов или статуса оценки.
	// Возвращает ErrGradeNotFound, если не найдена.
	Update(ctx context.Context, grade *Grade) error

	// GetByID возвращает оценку по ID.
	// Возвращает ErrGradeNotFound, если не найдена.
	GetByID(ctx context.Context, id string) (*Grade, error)

	// GetByAssessmentAndStudent возвращает оценку пары
	// (мероприятие, студент). Возвращает ErrGradeNotFound, если не найдена.
	GetByAssessmentAndStudent(ctx context.Context, assessmentID, studentID string) (*Grade, error)

	// GetByAssessment возвращает все оценки мероприятия.
	GetByAssessment(ctx context.Context, assessmentID string) ([]*Grade, error)

	// GetByStudent возвращает все оценки студента (любого статуса).
	GetByStudent(ctx context.Context, studentID string) ([]*Grade, error)

	// GetPublishedByStudent возвращает только опубликованные оценки
	// студента - единственный путь чтения для студенческих дашбордов.
	GetPublishedByStudent(ctx context.Context, studentID string) ([]*Grade, error)
}
