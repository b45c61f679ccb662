package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"
)

func TestGetStudentCourses_EnrollmentOrderAndCredits(t *testing.T) {
	store := memory.NewStore()
	ds := addCourse(t, store, "c-ds", "CS301", "AAAAAA", 4)
	ma := addCourse(t, store, "c-ma", "MA105", "BBBBBB", 2)
	db := addCourse(t, store, "c-db", "CS205", "CCCCCC", 3)

	// Enrolled in MA105 first, then CS301, then CS205.
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017", ma.ID, ds.ID, db.ID)

	h := NewGetStudentCoursesHandler(store.Students(), store.Courses())
	res, err := h.Handle(context.Background(), GetStudentCoursesQuery{StudentID: student.ID})
	require.NoError(t, err)

	require.Len(t, res.Courses, 3)
	assert.Equal(t, "MA105", res.Courses[0].Code)
	assert.Equal(t, "CS301", res.Courses[1].Code)
	assert.Equal(t, "CS205", res.Courses[2].Code)
	assert.Equal(t, 9, res.TotalCredits)
}

func TestGetStudentCourses_NoEnrollments(t *testing.T) {
	store := memory.NewStore()
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017")

	h := NewGetStudentCoursesHandler(store.Students(), store.Courses())
	res, err := h.Handle(context.Background(), GetStudentCoursesQuery{StudentID: student.ID})
	require.NoError(t, err)

	assert.Empty(t, res.Courses)
	assert.Zero(t, res.TotalCredits)
}

func TestGetStudentCourses_UnknownStudent(t *testing.T) {
	store := memory.NewStore()

	h := NewGetStudentCoursesHandler(store.Students(), store.Courses())
	_, err := h.Handle(context.Background(), GetStudentCoursesQuery{StudentID: "ghost"})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
