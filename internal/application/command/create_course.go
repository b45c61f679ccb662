package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE COURSE COMMAND
// Creates a course owned by a professor and assigns it a unique enrollment
// code. The candidate code is collision-checked against every existing
// course before assignment.
// ══════════════════════════════════════════════════════════════════════════════

// enrollmentCodeAttempts caps the collision-retry loop. With a 36^6 code
// space, hitting the cap means the store is saturated far beyond design size.
const enrollmentCodeAttempts = 10

// CreateCourseCommand contains the data to create a course.
type CreateCourseCommand struct {
	// ProfessorID is the owning professor.
	ProfessorID string

	// Name is the course name.
	Name string

	// Code is the catalog code, e.g. "CS301".
	Code string

	// Semester is the semester label, e.g. "Fall 2026".
	Semester string

	// Department is the offering department.
	Department string

	// Credits is the credit-hour weight of the course.
	Credits int
}

// Validate validates the command.
func (c CreateCourseCommand) Validate() error {
	if c.ProfessorID == "" {
		return errors.New("create_course: professor_id is required")
	}
	if c.Name == "" {
		return errors.New("create_course: name is required")
	}
	if c.Code == "" {
		return errors.New("create_course: code is required")
	}
	if c.Semester == "" {
		return errors.New("create_course: semester is required")
	}
	return nil
}

// CreateCourseResult contains the created course.
type CreateCourseResult struct {
	// Course is the created course, including its enrollment code.
	Course *course.Course
}

// CreateCourseHandler handles the CreateCourseCommand.
type CreateCourseHandler struct {
	professorRepo  identity.ProfessorRepository
	courseRepo     course.Repository
	eventPublisher shared.EventPublisher
}

// NewCreateCourseHandler creates a new CreateCourseHandler.
func NewCreateCourseHandler(
	professorRepo identity.ProfessorRepository,
	courseRepo course.Repository,
	eventPublisher shared.EventPublisher,
) *CreateCourseHandler {
	return &CreateCourseHandler{
		professorRepo:  professorRepo,
		courseRepo:     courseRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *CreateCourseHandler) Handle(ctx context.Context, cmd CreateCourseCommand) (*CreateCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("catalog", "CreateCourse", shared.ErrValidation, err.Error(), err)
	}

	if _, err := h.professorRepo.GetByID(ctx, cmd.ProfessorID); err != nil {
		return nil, shared.WrapError("catalog", "CreateCourse", shared.ErrNotFound, "professor not found", err)
	}

	code, err := h.generateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	crs, err := course.NewCourse(course.NewCourseParams{
		ID:             uuid.New().String(),
		Code:           cmd.Code,
		Name:           cmd.Name,
		ProfessorID:    cmd.ProfessorID,
		Semester:       cmd.Semester,
		Department:     cmd.Department,
		Credits:        cmd.Credits,
		EnrollmentCode: code,
	})
	if err != nil {
		return nil, shared.WrapError("catalog", "CreateCourse", shared.ErrValidation, "invalid course data", err)
	}

	if err := h.courseRepo.Create(ctx, crs); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(
		shared.EventCourseCreated,
		crs.ID,
		map[string]interface{}{
			"code":            crs.Code,
			"professor_id":    crs.ProfessorID,
			"enrollment_code": crs.EnrollmentCode.String(),
		},
	))

	return &CreateCourseResult{Course: crs}, nil
}

// generateUniqueCode draws candidate codes until one is free.
func (h *CreateCourseHandler) generateUniqueCode(ctx context.Context) (shared.EnrollmentCode, error) {
	for attempt := 0; attempt < enrollmentCodeAttempts; attempt++ {
		code, err := shared.GenerateEnrollmentCode()
		if err != nil {
			return "", err
		}
		taken, err := h.courseRepo.ExistsByEnrollmentCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", shared.NewDomainError("catalog", "CreateCourse", shared.ErrValidation,
		course.ErrCodeCollision.Error())
}
