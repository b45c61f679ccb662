package command

import (
	"context"
	"errors"

	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// PUBLISH GRADES COMMAND
// Sweeps every draft grade of an assessment to published. Publication is
// irreversible; already published grades are skipped. A course whose weights
// sum above 100 is published anyway with a warning - the sum is a soft
// invariant, not a gate.
// ══════════════════════════════════════════════════════════════════════════════

// PublishGradesCommand contains the data to publish an assessment's grades.
type PublishGradesCommand struct {
	// AssessmentID is the assessment whose grades become visible.
	AssessmentID string
}

// Validate validates the command.
func (c PublishGradesCommand) Validate() error {
	if c.AssessmentID == "" {
		return errors.New("publish_grades: assessment_id is required")
	}
	return nil
}

// PublishGradesResult contains the result of publishing grades.
type PublishGradesResult struct {
	// PublishedCount is the number of grades moved from draft to published.
	PublishedCount int

	// SkippedCount is the number of grades that were already published.
	SkippedCount int

	// WeightSum is the course's total assessment weight at publish time.
	WeightSum float64

	// OverWeighted is true when WeightSum exceeds 100.
	OverWeighted bool
}

// PublishGradesHandler handles the PublishGradesCommand.
type PublishGradesHandler struct {
	gradeRepo      gradebook.GradeRepository
	assessmentRepo gradebook.AssessmentRepository
	eventPublisher shared.EventPublisher
	logger         *logger.Logger
}

// NewPublishGradesHandler creates a new PublishGradesHandler.
func NewPublishGradesHandler(
	gradeRepo gradebook.GradeRepository,
	assessmentRepo gradebook.AssessmentRepository,
	eventPublisher shared.EventPublisher,
	log *logger.Logger,
) *PublishGradesHandler {
	if log == nil {
		log = logger.Default()
	}
	return &PublishGradesHandler{
		gradeRepo:      gradeRepo,
		assessmentRepo: assessmentRepo,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Handle executes the command.
func (h *PublishGradesHandler) Handle(ctx context.Context, cmd PublishGradesCommand) (*PublishGradesResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("gradebook", "PublishGrades", shared.ErrValidation, err.Error(), err)
	}

	assessment, err := h.assessmentRepo.GetByID(ctx, cmd.AssessmentID)
	if err != nil {
		return nil, shared.WrapError("gradebook", "PublishGrades", shared.ErrNotFound, "assessment not found", err)
	}

	courseAssessments, err := h.assessmentRepo.GetByCourse(ctx, assessment.CourseID)
	if err != nil {
		return nil, err
	}
	weightSum := gradebook.SumWeights(courseAssessments)
	overWeighted := weightSum > 100
	if overWeighted {
		h.logger.Warn("course assessment weights exceed 100, publishing anyway",
			logger.CourseID(assessment.CourseID),
			logger.AssessmentID(assessment.ID),
			logger.WeightSum(weightSum),
		)
	}

	grades, err := h.gradeRepo.GetByAssessment(ctx, cmd.AssessmentID)
	if err != nil {
		return nil, err
	}

	published, skipped := 0, 0
	for _, g := range grades {
		if g.IsPublished() {
			skipped++
			continue
		}
		g.Publish()
		if err := h.gradeRepo.Update(ctx, g); err != nil {
			return nil, err
		}
		published++
	}

	h.logger.Info("assessment grades published",
		logger.AssessmentID(assessment.ID),
		logger.CourseID(assessment.CourseID),
		logger.GradeCount(published),
	)

	publishEvent(ctx, h.eventPublisher,
		shared.NewGradesPublishedEvent(assessment.ID, assessment.CourseID, published, weightSum, overWeighted))

	return &PublishGradesResult{
		PublishedCount: published,
		SkippedCount:   skipped,
		WeightSum:      weightSum,
		OverWeighted:   overWeighted,
	}, nil
}
