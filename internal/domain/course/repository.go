package course

import (
	"context"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции хранения курсов.
type Repository interface {
	// Create создаёт новый курс.
	Create(ctx context.Context, course *Course) error

	// GetByID возвращает курс по ID.
	// Возвращает ErrCourseNotFound, если не найден.
	GetByID(ctx context.Context, id string) (*Course, error)

	// GetByEnrollmentCode возвращает курс по коду записи.
	// Возвращает ErrCourseNotFound, если код никому не принадлежит.
	GetByEnrollmentCode(ctx context.Context, code shared.EnrollmentCode) (*Course, error)

	// ExistsByEnrollmentCode проверяет занятость кода записи
	// (для проверки коллизий при генерации).
	ExistsByEnrollmentCode(ctx context.Context, code shared.EnrollmentCode) (bool, error)

	// GetByIDs возвращает курсы по списку ID, сохраняя порядок списка.
	// Так getStudentCourses выдаёт курсы в порядке записи студента.
	// Неизвестные ID пропускаются.
	GetByIDs(ctx context.Context, ids []string) ([]*Course, error)

	// GetByProfessor возвращает курсы преподавателя в порядке создания.
	GetByProfessor(ctx context.Context, professorID string) ([]*Course, error)

	// GetAll возвращает все курсы в порядке создания.
	GetAll(ctx context.Context) ([]*Course, error)

	// Count возвращает количество курсов.
	Count(ctx context.Context) (int, error)
}
