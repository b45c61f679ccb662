// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"context"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the store; rendering/export consumers subscribe read-only.
const (
	// Identity events
	EventProfessorRegistered EventType = "identity.professor_registered"
	EventStudentRegistered   EventType = "identity.student_registered"

	// Catalog events
	EventCourseCreated   EventType = "catalog.course_created"
	EventStudentEnrolled EventType = "catalog.student_enrolled"
	EventRosterImported  EventType = "catalog.roster_imported"

	// Lecture events
	EventLectureScheduled     EventType = "lecture.scheduled"
	EventLectureStatusChanged EventType = "lecture.status_changed"

	// Feedback events
	EventFeedbackRecorded EventType = "feedback.recorded"

	// Gradebook events
	EventAssessmentCreated EventType = "gradebook.assessment_created"
	EventGradeRecorded     EventType = "gradebook.grade_recorded"
	EventGradesPublished   EventType = "gradebook.grades_published"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// StudentEnrolledEvent is emitted when a student joins a course by code
// or through a roster import.
type StudentEnrolledEvent struct {
	BaseEvent
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
	ViaImport bool   `json:"via_import"`
}

// Payload implements Event interface.
func (e StudentEnrolledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"course_id":  e.CourseID,
		"via_import": e.ViaImport,
	}
}

// NewStudentEnrolledEvent creates a new StudentEnrolledEvent.
func NewStudentEnrolledEvent(studentID, courseID string, viaImport bool) StudentEnrolledEvent {
	return StudentEnrolledEvent{
		BaseEvent: NewBaseEvent(EventStudentEnrolled, studentID),
		StudentID: studentID,
		CourseID:  courseID,
		ViaImport: viaImport,
	}
}

// LectureStatusChangedEvent is emitted on every lecture lifecycle transition.
type LectureStatusChangedEvent struct {
	BaseEvent
	LectureID string `json:"lecture_id"`
	CourseID  string `json:"course_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Payload implements Event interface.
func (e LectureStatusChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"lecture_id": e.LectureID,
		"course_id":  e.CourseID,
		"from":       e.From,
		"to":         e.To,
	}
}

// NewLectureStatusChangedEvent creates a new LectureStatusChangedEvent.
func NewLectureStatusChangedEvent(lectureID, courseID, from, to string) LectureStatusChangedEvent {
	return LectureStatusChangedEvent{
		BaseEvent: NewBaseEvent(EventLectureStatusChanged, lectureID),
		LectureID: lectureID,
		CourseID:  courseID,
		From:      from,
		To:        to,
	}
}

// FeedbackRecordedEvent is emitted when a student submits lecture feedback.
type FeedbackRecordedEvent struct {
	BaseEvent
	FeedbackID    string `json:"feedback_id"`
	StudentID     string `json:"student_id"`
	LectureID     string `json:"lecture_id"`
	Understanding string `json:"understanding"`
}

// Payload implements Event interface.
func (e FeedbackRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"feedback_id":   e.FeedbackID,
		"student_id":    e.StudentID,
		"lecture_id":    e.LectureID,
		"understanding": e.Understanding,
	}
}

// NewFeedbackRecordedEvent creates a new FeedbackRecordedEvent.
func NewFeedbackRecordedEvent(feedbackID, studentID, lectureID, understanding string) FeedbackRecordedEvent {
	return FeedbackRecordedEvent{
		BaseEvent:     NewBaseEvent(EventFeedbackRecorded, feedbackID),
		FeedbackID:    feedbackID,
		StudentID:     studentID,
		LectureID:     lectureID,
		Understanding: understanding,
	}
}

// GradesPublishedEvent is emitted when an assessment's grades become visible
// to students. OverWeighted reports the soft invariant violation (course weight
// sum above 100) detected at publish time.
type GradesPublishedEvent struct {
	BaseEvent
	AssessmentID   string  `json:"assessment_id"`
	CourseID       string  `json:"course_id"`
	PublishedCount int     `json:"published_count"`
	WeightSum      float64 `json:"weight_sum"`
	OverWeighted   bool    `json:"over_weighted"`
}

// Payload implements Event interface.
func (e GradesPublishedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"assessment_id":   e.AssessmentID,
		"course_id":       e.CourseID,
		"published_count": e.PublishedCount,
		"weight_sum":      e.WeightSum,
		"over_weighted":   e.OverWeighted,
	}
}

// NewGradesPublishedEvent creates a new GradesPublishedEvent.
func NewGradesPublishedEvent(assessmentID, courseID string, count int, weightSum float64, overWeighted bool) GradesPublishedEvent {
	return GradesPublishedEvent{
		BaseEvent:      NewBaseEvent(EventGradesPublished, assessmentID),
		AssessmentID:   assessmentID,
		CourseID:       courseID,
		PublishedCount: count,
		WeightSum:      weightSum,
		OverWeighted:   overWeighted,
	}
}

// GenericEvent carries an arbitrary payload for events that do not need
// dedicated types (registrations, course creation, roster imports).
type GenericEvent struct {
	BaseEvent
	Data map[string]interface{} `json:"data,omitempty"`
}

// Payload implements Event interface.
func (e GenericEvent) Payload() map[string]interface{} {
	return e.Data
}

// NewGenericEvent creates a new GenericEvent.
func NewGenericEvent(eventType EventType, aggregateID string, data map[string]interface{}) GenericEvent {
	return GenericEvent{
		BaseEvent: NewBaseEvent(eventType, aggregateID),
		Data:      data,
	}
}

// EventHandler processes a single domain event.
type EventHandler interface {
	// Handle processes the event.
	Handle(ctx context.Context, event Event) error

	// Name returns the handler name for logging.
	Name() string
}

// EventHandlerFunc adapts a function to the EventHandler interface.
type EventHandlerFunc struct {
	HandlerName string
	Fn          func(ctx context.Context, event Event) error
}

// Handle implements EventHandler.
func (f EventHandlerFunc) Handle(ctx context.Context, event Event) error {
	return f.Fn(ctx, event)
}

// Name implements EventHandler.
func (f EventHandlerFunc) Name() string {
	return f.HandlerName
}

// EventPublisher publishes domain events to interested subscribers.
// Mutation handlers publish through this interface; a nil publisher is
// treated as a no-op by the application layer.
type EventPublisher interface {
	// Publish delivers the event to all subscribers.
	Publish(ctx context.Context, event Event) error
}
