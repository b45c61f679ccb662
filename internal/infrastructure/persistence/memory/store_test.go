package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
)

// Test fixture builders. Each panics through require on invalid input so
// broken fixtures fail loudly instead of producing nil-pointer noise.

func mustStudent(t *testing.T, id, email, roll string) *identity.Student {
	t.Helper()
	s, err := identity.NewStudent(identity.NewStudentParams{
		ID:         id,
		Name:       "Student " + id,
		Email:      email,
		RollNumber: roll,
		Department: "Computer Science",
	})
	require.NoError(t, err)
	return s
}

func mustLecture(t *testing.T, id, courseID string, date time.Time) *lecture.Lecture {
	t.Helper()
	l, err := lecture.NewLecture(lecture.NewLectureParams{
		ID:              id,
		CourseID:        courseID,
		Title:           "Lecture " + id,
		Date:            date,
		DurationMinutes: 90,
		Topics:          []string{"topic-a", "topic-b"},
	})
	require.NoError(t, err)
	return l
}

func mustFeedback(t *testing.T, id, lectureID, studentID string) *feedback.Feedback {
	t.Helper()
	fb, err := feedback.NewFeedback(feedback.NewFeedbackParams{
		ID:            id,
		LectureID:     lectureID,
		StudentID:     studentID,
		Understanding: feedback.UnderstandingPartial,
	})
	require.NoError(t, err)
	return fb
}

func mustGrade(t *testing.T, id, assessmentID, studentID string, marks *float64) *gradebook.Grade {
	t.Helper()
	g, err := gradebook.NewGrade(id, assessmentID, studentID, marks, 100)
	require.NoError(t, err)
	return g
}

func marksOf(v float64) *float64 { return &v }

func TestNewStore_FreshRepositories(t *testing.T) {
	store := NewStore()

	require.NotNil(t, store.Professors())
	require.NotNil(t, store.Students())
	require.NotNil(t, store.Courses())
	require.NotNil(t, store.Lectures())
	require.NotNil(t, store.Feedback())
	require.NotNil(t, store.Assessments())
	require.NotNil(t, store.Grades())
}
