package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"
)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	events []shared.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) typesSeen() []shared.EventType {
	types := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

func (p *capturePublisher) has(eventType shared.EventType) bool {
	for _, e := range p.events {
		if e.EventType() == eventType {
			return true
		}
	}
	return false
}

// testEnv bundles a fresh store and event capture for command tests.
type testEnv struct {
	store *memory.Store
	bus   *capturePublisher
}

func newTestEnv() *testEnv {
	return &testEnv{
		store: memory.NewStore(),
		bus:   &capturePublisher{},
	}
}

func (e *testEnv) seedProfessor(t *testing.T) string {
	t.Helper()
	h := NewRegisterProfessorHandler(e.store.Professors(), nil)
	res, err := h.Handle(context.Background(), RegisterProfessorCommand{
		Name:       "Aliya Nurkhanova",
		Email:      "a.nurkhanova@university.edu",
		Department: "Computer Science",
	})
	require.NoError(t, err)
	return res.ProfessorID
}

func (e *testEnv) seedCourse(t *testing.T, professorID string) *course.Course {
	t.Helper()
	h := NewCreateCourseHandler(e.store.Professors(), e.store.Courses(), nil)
	res, err := h.Handle(context.Background(), CreateCourseCommand{
		ProfessorID: professorID,
		Name:        "Distributed Systems",
		Code:        "CS301",
		Semester:    "Fall 2026",
		Department:  "Computer Science",
		Credits:     4,
	})
	require.NoError(t, err)
	return res.Course
}

func (e *testEnv) seedStudent(t *testing.T, email, roll string) string {
	t.Helper()
	h := NewRegisterStudentHandler(e.store.Students(), nil)
	res, err := h.Handle(context.Background(), RegisterStudentCommand{
		Name:       "Test Student",
		Email:      email,
		RollNumber: roll,
		Department: "Computer Science",
	})
	require.NoError(t, err)
	return res.StudentID
}

func (e *testEnv) enroll(t *testing.T, studentID string, code shared.EnrollmentCode) {
	t.Helper()
	h := NewEnrollByCodeHandler(e.store.Students(), e.store.Courses(), nil)
	_, err := h.Handle(context.Background(), EnrollByCodeCommand{
		StudentID: studentID,
		Code:      string(code),
	})
	require.NoError(t, err)
}

func (e *testEnv) seedAssessment(t *testing.T, courseID string, weightPct float64) *gradebook.Assessment {
	t.Helper()
	h := NewCreateAssessmentHandler(e.store.Assessments(), e.store.Courses(), nil)
	res, err := h.Handle(context.Background(), CreateAssessmentCommand{
		CourseID:  courseID,
		Name:      "Midterm",
		Type:      gradebook.TypeMidterm,
		MaxMarks:  100,
		WeightPct: weightPct,
	})
	require.NoError(t, err)
	return res.Assessment
}

func (e *testEnv) seedLecture(t *testing.T, courseID string, status lecture.Status) *lecture.Lecture {
	t.Helper()
	h := NewScheduleLectureHandler(e.store.Lectures(), e.store.Courses(), nil)
	res, err := h.Handle(context.Background(), ScheduleLectureCommand{
		CourseID:        courseID,
		Title:           "Consensus and Raft",
		Date:            time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		Topics:          []string{"leader election", "log replication"},
	})
	require.NoError(t, err)

	lec := res.Lecture
	if status != lecture.StatusScheduled {
		th := NewTransitionLectureHandler(e.store.Lectures(), nil)
		tres, err := th.Handle(context.Background(), TransitionLectureCommand{
			LectureID: lec.ID,
			Target:    status,
		})
		require.NoError(t, err)
		lec = tres.Lecture
	}
	return lec
}
