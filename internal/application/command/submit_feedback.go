package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT FEEDBACK COMMAND
// Accepts feedback only for completed lectures, only from students enrolled
// in the lecture's course, at most once per (student, lecture) pair.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitFeedbackCommand contains the data to record lecture feedback.
type SubmitFeedbackCommand struct {
	// StudentID is the feedback author.
	StudentID string

	// LectureID is the lecture being reviewed.
	LectureID string

	// Understanding is the overall understanding level.
	Understanding feedback.UnderstandingLevel

	// TopicRatings rates individual lecture topics, 1-5 each.
	TopicRatings []feedback.TopicRating

	// Comment is optional free text.
	Comment string
}

// Validate validates the command.
func (c SubmitFeedbackCommand) Validate() error {
	if c.StudentID == "" {
		return errors.New("submit_feedback: student_id is required")
	}
	if c.LectureID == "" {
		return errors.New("submit_feedback: lecture_id is required")
	}
	if !c.Understanding.IsValid() {
		return errors.New("submit_feedback: unknown understanding level")
	}
	return nil
}

// SubmitFeedbackResult contains the result of recording feedback.
type SubmitFeedbackResult struct {
	// Feedback is the stored feedback entry.
	Feedback *feedback.Feedback
}

// SubmitFeedbackHandler handles the SubmitFeedbackCommand.
type SubmitFeedbackHandler struct {
	feedbackRepo   feedback.Repository
	lectureRepo    lecture.Repository
	studentRepo    identity.StudentRepository
	eventPublisher shared.EventPublisher
}

// NewSubmitFeedbackHandler creates a new SubmitFeedbackHandler.
func NewSubmitFeedbackHandler(
	feedbackRepo feedback.Repository,
	lectureRepo lecture.Repository,
	studentRepo identity.StudentRepository,
	eventPublisher shared.EventPublisher,
) *SubmitFeedbackHandler {
	return &SubmitFeedbackHandler{
		feedbackRepo:   feedbackRepo,
		lectureRepo:    lectureRepo,
		studentRepo:    studentRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *SubmitFeedbackHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) (*SubmitFeedbackResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("feedback", "Submit", shared.ErrValidation, err.Error(), err)
	}

	lec, err := h.lectureRepo.GetByID(ctx, cmd.LectureID)
	if err != nil {
		return nil, shared.WrapError("feedback", "Submit", shared.ErrNotFound, "lecture not found", err)
	}
	if !lec.IsCompleted() {
		return nil, shared.NewDomainError("feedback", "Submit", shared.ErrLectureNotCompleted,
			"feedback is accepted only for completed lectures")
	}

	student, err := h.studentRepo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return nil, shared.WrapError("feedback", "Submit", shared.ErrNotFound, "student not found", err)
	}
	if !student.IsEnrolledIn(lec.CourseID) {
		return nil, shared.NewDomainError("feedback", "Submit", shared.ErrValidation,
			"student is not enrolled in the lecture's course")
	}

	fb, err := feedback.NewFeedback(feedback.NewFeedbackParams{
		ID:            uuid.NewString(),
		LectureID:     cmd.LectureID,
		StudentID:     cmd.StudentID,
		Understanding: cmd.Understanding,
		TopicRatings:  cmd.TopicRatings,
		Comment:       cmd.Comment,
	})
	if err != nil {
		return nil, shared.WrapError("feedback", "Submit", shared.ErrValidation, err.Error(), err)
	}

	// The repository enforces the one-feedback-per-(student, lecture) rule atomically.
	if err := h.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher,
		shared.NewFeedbackRecordedEvent(fb.ID, fb.StudentID, fb.LectureID, string(fb.Understanding)))

	return &SubmitFeedbackResult{Feedback: fb}, nil
}
