package command

import (
	"context"
	"errors"

	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TRANSITION LECTURE COMMAND
// Drives the lecture lifecycle. Legal moves: scheduled→live, live→completed,
// scheduled→completed. Everything else is rejected by the entity.
// ══════════════════════════════════════════════════════════════════════════════

// TransitionLectureCommand contains the data to move a lecture to a new status.
type TransitionLectureCommand struct {
	// LectureID is the lecture to transition.
	LectureID string

	// Target is the requested status.
	Target lecture.Status
}

// Validate validates the command.
func (c TransitionLectureCommand) Validate() error {
	if c.LectureID == "" {
		return errors.New("transition_lecture: lecture_id is required")
	}
	if !c.Target.IsValid() {
		return errors.New("transition_lecture: unknown target status")
	}
	return nil
}

// TransitionLectureResult contains the result of a lecture transition.
type TransitionLectureResult struct {
	// Lecture is the lecture after the transition.
	Lecture *lecture.Lecture

	// PreviousStatus is the status before the transition.
	PreviousStatus lecture.Status
}

// TransitionLectureHandler handles the TransitionLectureCommand.
type TransitionLectureHandler struct {
	lectureRepo    lecture.Repository
	eventPublisher shared.EventPublisher
}

// NewTransitionLectureHandler creates a new TransitionLectureHandler.
func NewTransitionLectureHandler(
	lectureRepo lecture.Repository,
	eventPublisher shared.EventPublisher,
) *TransitionLectureHandler {
	return &TransitionLectureHandler{
		lectureRepo:    lectureRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *TransitionLectureHandler) Handle(ctx context.Context, cmd TransitionLectureCommand) (*TransitionLectureResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("lecture", "Transition", shared.ErrValidation, err.Error(), err)
	}

	lec, err := h.lectureRepo.GetByID(ctx, cmd.LectureID)
	if err != nil {
		return nil, shared.WrapError("lecture", "Transition", shared.ErrNotFound, "lecture not found", err)
	}

	prev := lec.Status
	if err := lec.TransitionTo(cmd.Target); err != nil {
		return nil, err
	}

	if err := h.lectureRepo.Update(ctx, lec); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher,
		shared.NewLectureStatusChangedEvent(lec.ID, lec.CourseID, string(prev), string(lec.Status)))

	return &TransitionLectureResult{
		Lecture:        lec,
		PreviousStatus: prev,
	}, nil
}
