package command

import (
	"context"
	"errors"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL BY CODE COMMAND
// Redeems an enrollment code: the only self-service write path that creates
// a Student ↔ Course relationship. Roster imports pre-set the relationship
// directly and bypass the code.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollByCodeCommand contains the data to redeem an enrollment code.
type EnrollByCodeCommand struct {
	// StudentID is the redeeming student.
	StudentID string

	// Code is the enrollment code as entered by the student.
	Code string
}

// Validate validates the command.
func (c EnrollByCodeCommand) Validate() error {
	if c.StudentID == "" {
		return errors.New("enroll_by_code: student_id is required")
	}
	if c.Code == "" {
		return errors.New("enroll_by_code: code is required")
	}
	return nil
}

// EnrollByCodeResult contains the result of a successful enrollment.
type EnrollByCodeResult struct {
	// CourseID is the joined course.
	CourseID string

	// CourseName is the joined course's name, for confirmation screens.
	CourseName string
}

// EnrollByCodeHandler handles the EnrollByCodeCommand.
type EnrollByCodeHandler struct {
	studentRepo    identity.StudentRepository
	courseRepo     course.Repository
	eventPublisher shared.EventPublisher
}

// NewEnrollByCodeHandler creates a new EnrollByCodeHandler.
func NewEnrollByCodeHandler(
	studentRepo identity.StudentRepository,
	courseRepo course.Repository,
	eventPublisher shared.EventPublisher,
) *EnrollByCodeHandler {
	return &EnrollByCodeHandler{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *EnrollByCodeHandler) Handle(ctx context.Context, cmd EnrollByCodeCommand) (*EnrollByCodeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("catalog", "EnrollByCode", shared.ErrValidation, err.Error(), err)
	}

	student, err := h.studentRepo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return nil, shared.WrapError("catalog", "EnrollByCode", shared.ErrNotFound, "student not found", err)
	}

	code := shared.NormalizeEnrollmentCode(cmd.Code)
	crs, err := h.courseRepo.GetByEnrollmentCode(ctx, code)
	if err != nil {
		return nil, shared.NewDomainError("catalog", "EnrollByCode", shared.ErrInvalidCode,
			"no course matches this enrollment code")
	}

	if err := student.EnrollIn(crs.ID); err != nil {
		return nil, shared.WrapError("catalog", "EnrollByCode", shared.ErrAlreadyEnrolled,
			"student already enrolled in this course", err)
	}

	if err := h.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher, shared.NewStudentEnrolledEvent(student.ID, crs.ID, false))

	return &EnrollByCodeResult{
		CourseID:   crs.ID,
		CourseName: crs.Name,
	}, nil
}
