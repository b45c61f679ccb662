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
// REGISTER STUDENT COMMAND
// Creates a student identity with an empty enrollment set. Joining courses
// happens through EnrollByCode or a roster import, never here.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentCommand contains the data to register a student.
type RegisterStudentCommand struct {
	// Name is the student's full name.
	Name string

	// Email is the login email; normalized before any checks.
	Email string

	// RollNumber is the student's roll number.
	RollNumber string

	// Department is the student's department.
	Department string

	// Password is optional; when set it is bcrypt-hashed before storage.
	Password string
}

// Validate validates the command.
func (c RegisterStudentCommand) Validate() error {
	if c.Name == "" {
		return errors.New("register_student: name is required")
	}
	if c.Email == "" {
		return errors.New("register_student: email is required")
	}
	if c.RollNumber == "" {
		return errors.New("register_student: roll_number is required")
	}
	if c.Department == "" {
		return errors.New("register_student: department is required")
	}
	return nil
}

// RegisterStudentResult contains the result of the registration.
type RegisterStudentResult struct {
	// StudentID is the generated opaque identifier.
	StudentID string

	// Email is the normalized email the account was registered under.
	Email string

	// RegisteredAt is when the registration happened.
	RegisteredAt time.Time
}

// RegisterStudentHandler handles the RegisterStudentCommand.
type RegisterStudentHandler struct {
	studentRepo    identity.StudentRepository
	eventPublisher shared.EventPublisher
}

// NewRegisterStudentHandler creates a new RegisterStudentHandler.
func NewRegisterStudentHandler(
	studentRepo identity.StudentRepository,
	eventPublisher shared.EventPublisher,
) *RegisterStudentHandler {
	return &RegisterStudentHandler{
		studentRepo:    studentRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *RegisterStudentHandler) Handle(ctx context.Context, cmd RegisterStudentCommand) (*RegisterStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("identity", "RegisterStudent", shared.ErrValidation, err.Error(), err)
	}

	student, err := identity.NewStudent(identity.NewStudentParams{
		ID:         uuid.New().String(),
		Name:       cmd.Name,
		Email:      cmd.Email,
		RollNumber: cmd.RollNumber,
		Department: cmd.Department,
	})
	if err != nil {
		return nil, shared.WrapError("identity", "RegisterStudent", shared.ErrValidation, "invalid student data", err)
	}

	if cmd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, shared.WrapError("identity", "RegisterStudent", shared.ErrValidation, "password hashing failed", err)
		}
		student.PasswordHash = string(hash)
	}

	if err := h.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(
		shared.EventStudentRegistered,
		student.ID,
		map[string]interface{}{
			"email":       student.Email.String(),
			"roll_number": student.RollNumber.String(),
			"department":  student.Department,
		},
	))

	return &RegisterStudentResult{
		StudentID:    student.ID,
		Email:        student.Email.String(),
		RegisteredAt: student.CreatedAt,
	}, nil
}
