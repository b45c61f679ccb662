package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE LECTURE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleLectureCommand contains the data to schedule a lecture in a course.
type ScheduleLectureCommand struct {
	// CourseID is the course the lecture belongs to.
	CourseID string

	// Title is the lecture topic line.
	Title string

	// Date is when the lecture takes place.
	Date time.Time

	// DurationMinutes is the planned duration.
	DurationMinutes int

	// Topics lists the topics students rate in their feedback.
	Topics []string
}

// Validate validates the command. Field-level rules live in the
// lecture entity; the command only checks presence.
func (c ScheduleLectureCommand) Validate() error {
	if c.CourseID == "" {
		return errors.New("schedule_lecture: course_id is required")
	}
	if c.Title == "" {
		return errors.New("schedule_lecture: title is required")
	}
	return nil
}

// ScheduleLectureResult contains the result of scheduling a lecture.
type ScheduleLectureResult struct {
	// Lecture is the newly created lecture, in status scheduled.
	Lecture *lecture.Lecture
}

// ScheduleLectureHandler handles the ScheduleLectureCommand.
type ScheduleLectureHandler struct {
	lectureRepo    lecture.Repository
	courseRepo     course.Repository
	eventPublisher shared.EventPublisher
}

// NewScheduleLectureHandler creates a new ScheduleLectureHandler.
func NewScheduleLectureHandler(
	lectureRepo lecture.Repository,
	courseRepo course.Repository,
	eventPublisher shared.EventPublisher,
) *ScheduleLectureHandler {
	return &ScheduleLectureHandler{
		lectureRepo:    lectureRepo,
		courseRepo:     courseRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *ScheduleLectureHandler) Handle(ctx context.Context, cmd ScheduleLectureCommand) (*ScheduleLectureResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("lecture", "Schedule", shared.ErrValidation, err.Error(), err)
	}

	if _, err := h.courseRepo.GetByID(ctx, cmd.CourseID); err != nil {
		return nil, shared.WrapError("lecture", "Schedule", shared.ErrNotFound, "course not found", err)
	}

	lec, err := lecture.NewLecture(lecture.NewLectureParams{
		ID:              uuid.NewString(),
		CourseID:        cmd.CourseID,
		Title:           cmd.Title,
		Date:            cmd.Date,
		DurationMinutes: cmd.DurationMinutes,
		Topics:          cmd.Topics,
	})
	if err != nil {
		return nil, shared.WrapError("lecture", "Schedule", shared.ErrValidation, err.Error(), err)
	}

	if err := h.lectureRepo.Create(ctx, lec); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(shared.EventLectureScheduled, lec.ID,
		map[string]interface{}{
			"course_id": lec.CourseID,
			"title":     lec.Title,
			"date":      lec.Date,
		}))

	return &ScheduleLectureResult{Lecture: lec}, nil
}
