package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER PROFESSOR COMMAND
// Creates a professor identity. Email uniqueness is enforced on the
// normalized form and scoped to professors; professor and student email
// namespaces are independent.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterProfessorCommand contains the data to register a professor.
type RegisterProfessorCommand struct {
	// Name is the professor's full name.
	Name string

	// Email is the login email; normalized before any checks.
	Email string

	// Department is the professor's department.
	Department string

	// Password is optional; when set it is bcrypt-hashed before storage.
	Password string
}

// Validate validates the command.
func (c RegisterProfessorCommand) Validate() error {
	if c.Name == "" {
		return errors.New("register_professor: name is required")
	}
	if c.Email == "" {
		return errors.New("register_professor: email is required")
	}
	if c.Department == "" {
		return errors.New("register_professor: department is required")
	}
	return nil
}

// RegisterProfessorResult contains the result of the registration.
type RegisterProfessorResult struct {
	// ProfessorID is the generated opaque identifier.
	ProfessorID string

	// Email is the normalized email the account was registered under.
	Email string

	// RegisteredAt is when the registration happened.
	RegisteredAt time.Time
}

// RegisterProfessorHandler handles the RegisterProfessorCommand.
type RegisterProfessorHandler struct {
	professorRepo  identity.ProfessorRepository
	eventPublisher shared.EventPublisher
}

// NewRegisterProfessorHandler creates a new RegisterProfessorHandler.
func NewRegisterProfessorHandler(
	professorRepo identity.ProfessorRepository,
	eventPublisher shared.EventPublisher,
) *RegisterProfessorHandler {
	return &RegisterProfessorHandler{
		professorRepo:  professorRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *RegisterProfessorHandler) Handle(ctx context.Context, cmd RegisterProfessorCommand) (*RegisterProfessorResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("identity", "RegisterProfessor", shared.ErrValidation, err.Error(), err)
	}

	professor, err := identity.NewProfessor(identity.NewProfessorParams{
		ID:         uuid.New().String(),
		Name:       cmd.Name,
		Email:      cmd.Email,
		Department: cmd.Department,
	})
	if err != nil {
		return nil, shared.WrapError("identity", "RegisterProfessor", shared.ErrValidation, "invalid professor data", err)
	}

	if cmd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, shared.WrapError("identity", "RegisterProfessor", shared.ErrValidation, "password hashing failed", err)
		}
		professor.PasswordHash = string(hash)
	}

	// The repository enforces email uniqueness atomically; a pre-check
	// here would only narrow the window, not close it.
	if err := h.professorRepo.Create(ctx, professor); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(
		shared.EventProfessorRegistered,
		professor.ID,
		map[string]interface{}{
			"email":      professor.Email.String(),
			"department": professor.Department,
		},
	))

	return &RegisterProfessorResult{
		ProfessorID:  professor.ID,
		Email:        professor.Email.String(),
		RegisteredAt: professor.CreatedAt,
	}, nil
}
