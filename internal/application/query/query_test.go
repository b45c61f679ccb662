package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"
)

// Fixture builders seed the store through the domain constructors, the
// same path production writes take.

func addCourse(t *testing.T, store *memory.Store, id, code string, enrollCode string, credits int) *course.Course {
	t.Helper()
	c, err := course.NewCourse(course.NewCourseParams{
		ID:             id,
		Code:           code,
		Name:           "Course " + code,
		ProfessorID:    "prof-1",
		Semester:       "Fall 2026",
		Department:     "Computer Science",
		Credits:        credits,
		EnrollmentCode: shared.EnrollmentCode(enrollCode),
	})
	require.NoError(t, err)
	require.NoError(t, store.Courses().Create(context.Background(), c))
	return c
}

func addStudent(t *testing.T, store *memory.Store, id, email, roll string, courseIDs ...string) *identity.Student {
	t.Helper()
	s, err := identity.NewStudent(identity.NewStudentParams{
		ID:         id,
		Name:       "Student " + roll,
		Email:      email,
		RollNumber: roll,
		Department: "Computer Science",
	})
	require.NoError(t, err)
	require.NoError(t, store.Students().Create(context.Background(), s))
	for _, courseID := range courseIDs {
		require.NoError(t, s.EnrollIn(courseID))
	}
	if len(courseIDs) > 0 {
		require.NoError(t, store.Students().Update(context.Background(), s))
	}
	return s
}

func addLecture(t *testing.T, store *memory.Store, id, courseID string, date time.Time, completed bool) *lecture.Lecture {
	t.Helper()
	l, err := lecture.NewLecture(lecture.NewLectureParams{
		ID:              id,
		CourseID:        courseID,
		Title:           "Lecture " + id,
		Date:            date,
		DurationMinutes: 90,
		Topics:          []string{"consistency", "replication"},
	})
	require.NoError(t, err)
	if completed {
		require.NoError(t, l.TransitionTo(lecture.StatusCompleted))
	}
	require.NoError(t, store.Lectures().Create(context.Background(), l))
	return l
}

func addFeedback(t *testing.T, store *memory.Store, id, lectureID, studentID string, level feedback.UnderstandingLevel, ratings []feedback.TopicRating) *feedback.Feedback {
	t.Helper()
	f, err := feedback.NewFeedback(feedback.NewFeedbackParams{
		ID:            id,
		LectureID:     lectureID,
		StudentID:     studentID,
		Understanding: level,
		TopicRatings:  ratings,
	})
	require.NoError(t, err)
	require.NoError(t, store.Feedback().Create(context.Background(), f))
	return f
}

func addAssessment(t *testing.T, store *memory.Store, id, courseID, name string, weightPct float64) *gradebook.Assessment {
	t.Helper()
	a, err := gradebook.NewAssessment(gradebook.NewAssessmentParams{
		ID:        id,
		CourseID:  courseID,
		Name:      name,
		Type:      gradebook.TypeAssignment,
		MaxMarks:  100,
		WeightPct: weightPct,
	})
	require.NoError(t, err)
	require.NoError(t, store.Assessments().Create(context.Background(), a))
	return a
}

func addGrade(t *testing.T, store *memory.Store, id, assessmentID, studentID string, marksObtained *float64, published bool) *gradebook.Grade {
	t.Helper()
	g, err := gradebook.NewGrade(id, assessmentID, studentID, marksObtained, 100)
	require.NoError(t, err)
	if published {
		g.Publish()
	}
	require.NoError(t, store.Grades().Create(context.Background(), g))
	return g
}

func marksOf(v float64) *float64 { return &v }

func day(n int) time.Time {
	return time.Date(2026, 9, n, 10, 0, 0, 0, time.UTC)
}
