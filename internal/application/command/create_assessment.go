package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE ASSESSMENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateAssessmentCommand contains the data to create a graded assessment.
type CreateAssessmentCommand struct {
	// CourseID is the owning course.
	CourseID string

	// Name is the assessment name.
	Name string

	// Type is one of quiz, assignment, midterm, final, project.
	Type gradebook.AssessmentType

	// MaxMarks is the maximum obtainable marks.
	MaxMarks float64

	// WeightPct is the assessment's weight in the course grade, (0, 100].
	WeightPct float64

	// DueDate is optional.
	DueDate *time.Time
}

// Validate validates the command. Range checks live in the entity.
func (c CreateAssessmentCommand) Validate() error {
	if c.CourseID == "" {
		return errors.New("create_assessment: course_id is required")
	}
	if c.Name == "" {
		return errors.New("create_assessment: name is required")
	}
	return nil
}

// CreateAssessmentResult contains the result of creating an assessment.
type CreateAssessmentResult struct {
	// Assessment is the newly created assessment.
	Assessment *gradebook.Assessment
}

// CreateAssessmentHandler handles the CreateAssessmentCommand.
type CreateAssessmentHandler struct {
	assessmentRepo gradebook.AssessmentRepository
	courseRepo     course.Repository
	eventPublisher shared.EventPublisher
}

// NewCreateAssessmentHandler creates a new CreateAssessmentHandler.
func NewCreateAssessmentHandler(
	assessmentRepo gradebook.AssessmentRepository,
	courseRepo course.Repository,
	eventPublisher shared.EventPublisher,
) *CreateAssessmentHandler {
	return &CreateAssessmentHandler{
		assessmentRepo: assessmentRepo,
		courseRepo:     courseRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *CreateAssessmentHandler) Handle(ctx context.Context, cmd CreateAssessmentCommand) (*CreateAssessmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("gradebook", "CreateAssessment", shared.ErrValidation, err.Error(), err)
	}

	if _, err := h.courseRepo.GetByID(ctx, cmd.CourseID); err != nil {
		return nil, shared.WrapError("gradebook", "CreateAssessment", shared.ErrNotFound, "course not found", err)
	}

	assessment, err := gradebook.NewAssessment(gradebook.NewAssessmentParams{
		ID:        uuid.NewString(),
		CourseID:  cmd.CourseID,
		Name:      cmd.Name,
		Type:      cmd.Type,
		MaxMarks:  cmd.MaxMarks,
		WeightPct: cmd.WeightPct,
		DueDate:   cmd.DueDate,
	})
	if err != nil {
		return nil, shared.WrapError("gradebook", "CreateAssessment", shared.ErrValidation, err.Error(), err)
	}

	if err := h.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(shared.EventAssessmentCreated, assessment.ID,
		map[string]interface{}{
			"course_id":  assessment.CourseID,
			"name":       assessment.Name,
			"type":       string(assessment.Type),
			"weight_pct": assessment.WeightPct,
		}))

	return &CreateAssessmentResult{Assessment: assessment}, nil
}
