// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"errors"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIND BY EMAIL QUERY
// Находит пользователя (преподавателя или студента) по email.
// Уникальность email действует в пределах роли: один и тот же адрес
// может принадлежать и преподавателю, и студенту. Без указания роли
// ищем сначала среди преподавателей, затем среди студентов.
// ══════════════════════════════════════════════════════════════════════════════

// FindByEmailQuery содержит параметры поиска по email.
type FindByEmailQuery struct {
	// Email - искомый адрес в любом регистре; нормализуется при поиске.
	Email string

	// Role - опциональная роль, в пределах которой ищем
	// (пустая = преподаватели, затем студенты).
	Role identity.Role
}

// Validate проверяет корректность параметров запроса.
func (q *FindByEmailQuery) Validate() error {
	if q.Email == "" {
		return errors.New("email is required")
	}
	if q.Role != "" && !q.Role.IsValid() {
		return errors.New("unknown role")
	}
	return nil
}

// UserDTO - DTO пользователя для результата поиска.
type UserDTO struct {
	// ID - внутренний идентификатор.
	ID string `json:"id"`

	// Role - роль пользователя.
	Role identity.Role `json:"role"`

	// Name - полное имя.
	Name string `json:"name"`

	// Email - нормализованный email.
	Email string `json:"email"`

	// Department - кафедра.
	Department string `json:"department"`

	// RollNumber - номер зачётки (только у студентов).
	RollNumber string `json:"roll_number,omitempty"`

	// CreatedAt - время регистрации.
	CreatedAt time.Time `json:"created_at"`
}

// FindByEmailResult содержит результат поиска.
type FindByEmailResult struct {
	// User - найденный пользователь.
	User UserDTO `json:"user"`
}

// FindByEmailHandler обрабатывает запросы поиска пользователя по email.
type FindByEmailHandler struct {
	professorRepo identity.ProfessorRepository
	studentRepo   identity.StudentRepository
}

// NewFindByEmailHandler создаёт новый обработчик поиска по email.
func NewFindByEmailHandler(
	professorRepo identity.ProfessorRepository,
	studentRepo identity.StudentRepository,
) *FindByEmailHandler {
	return &FindByEmailHandler{
		professorRepo: professorRepo,
		studentRepo:   studentRepo,
	}
}

// Handle выполняет запрос поиска по email.
func (h *FindByEmailHandler) Handle(ctx context.Context, query FindByEmailQuery) (*FindByEmailResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "FindByEmail", shared.ErrValidation, err.Error(), err)
	}

	email := shared.Email(shared.NormalizeEmail(query.Email))

	if query.Role == "" || query.Role == identity.RoleProfessor {
		if prof, err := h.professorRepo.GetByEmail(ctx, email); err == nil {
			return &FindByEmailResult{User: UserDTO{
				ID:         prof.ID,
				Role:       identity.RoleProfessor,
				Name:       prof.Name,
				Email:      prof.Email.String(),
				Department: prof.Department,
				CreatedAt:  prof.CreatedAt,
			}}, nil
		} else if query.Role == identity.RoleProfessor {
			return nil, shared.WrapError("query", "FindByEmail", shared.ErrNotFound, "professor not found", err)
		}
	}

	student, err := h.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, shared.WrapError("query", "FindByEmail", shared.ErrNotFound, "user not found", err)
	}
	return &FindByEmailResult{User: UserDTO{
		ID:         student.ID,
		Role:       identity.RoleStudent,
		Name:       student.Name,
		Email:      student.Email.String(),
		Department: student.Department,
		RollNumber: student.RollNumber.String(),
		CreatedAt:  student.CreatedAt,
	}}, nil
}
