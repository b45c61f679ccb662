package identity

import (
	"context"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// ProfessorRepository определяет операции хранения преподавателей.
type ProfessorRepository interface {
	// Create создаёт нового преподавателя.
	// Возвращает shared.ErrDuplicateEmail, если email уже занят.
	Create(ctx context.Context, professor *Professor) error

	// GetByID возвращает преподавателя по ID.
	// Возвращает ErrProfessorNotFound, если не найден.
	GetByID(ctx context.Context, id string) (*Professor, error)

	// GetByEmail возвращает преподавателя по нормализованному email.
	// Возвращает ErrProfessorNotFound, если не найден.
	GetByEmail(ctx context.Context, email shared.Email) (*Professor, error)

	// ExistsByEmail проверяет занятость email среди преподавателей.
	ExistsByEmail(ctx context.Context, email shared.Email) (bool, error)

	// GetAll возвращает всех преподавателей.
	GetAll(ctx context.Context) ([]*Professor, error)

	// Count возвращает количество преподавателей.
	Count(ctx context.Context) (int, error)
}

// StudentRepository определяет операции хранения студентов.
type StudentRepository interface {
	// Create создаёт нового студента.
	// Возвращает shared.ErrDuplicateEmail, если email уже занят.
	Create(ctx context.Context, student *Student) error

	// GetByID возвращает студента по ID.
	// Возвращает ErrStudentNotFound, если не найден.
	GetByID(ctx context.Context, id string) (*Student, error)

	// GetByEmail возвращает студента по нормализованному email.
	// Возвращает ErrStudentNotFound, если не найден.
	GetByEmail(ctx context.Context, email shared.Email) (*Student, error)

	// ExistsByEmail проверяет занятость email среди студентов.
	ExistsByEmail(ctx context.Context, email shared.Email) (bool, error)

	// Update обновляет данные студента (список записей на курсы).
	// Возвращает ErrStudentNotFound, если не найден.
	Update(ctx context.Context, student *Student) error

	// GetByIDs возвращает студентов по списку ID, сохраняя порядок списка.
	// Неизвестные ID пропускаются.
	GetByIDs(ctx context.Context, ids []string) ([]*Student, error)

	// GetEnrolledInCourse возвращает студентов, записанных на курс,
	// в порядке их регистрации в системе.
	GetEnrolledInCourse(ctx context.Context, courseID string) ([]*Student, error)

	// GetAll возвращает всех студентов.
	GetAll(ctx context.Context) ([]*Student, error)

	// Count возвращает количество студентов.
	Count(ctx context.Context) (int, error)
}
