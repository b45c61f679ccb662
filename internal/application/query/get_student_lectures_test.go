package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"
)

func TestGetStudentLectures_AllCoursesDateOrder(t *testing.T) {
	store := memory.NewStore()
	cs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	ma := addCourse(t, store, "c-2", "MA105", "BBBBBB", 3)
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017", cs.ID, ma.ID)

	// Лекции разных курсов вперемешку по дате; попадает и scheduled.
	addLecture(t, store, "l-2", ma.ID, day(2), false)
	addLecture(t, store, "l-1", cs.ID, day(1), true)
	addLecture(t, store, "l-3", cs.ID, day(3), false)

	h := NewGetStudentLecturesHandler(store.Students(), store.Courses(), store.Lectures())
	res, err := h.Handle(context.Background(), GetStudentLecturesQuery{StudentID: student.ID})
	require.NoError(t, err)

	require.Len(t, res.Lectures, 3)
	assert.Equal(t, "l-1", res.Lectures[0].Lecture.ID)
	assert.Equal(t, "l-2", res.Lectures[1].Lecture.ID)
	assert.Equal(t, "l-3", res.Lectures[2].Lecture.ID)
	assert.Equal(t, "CS301", res.Lectures[0].CourseCode)
	assert.Equal(t, "MA105", res.Lectures[1].CourseCode)
	assert.Equal(t, 1, res.CompletedCount)
}

func TestGetStudentLectures_StatusFilter(t *testing.T) {
	store := memory.NewStore()
	cs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017", cs.ID)

	addLecture(t, store, "l-1", cs.ID, day(1), true)
	addLecture(t, store, "l-2", cs.ID, day(2), false)

	h := NewGetStudentLecturesHandler(store.Students(), store.Courses(), store.Lectures())
	res, err := h.Handle(context.Background(), GetStudentLecturesQuery{
		StudentID: student.ID,
		Status:    lecture.StatusScheduled,
	})
	require.NoError(t, err)

	require.Len(t, res.Lectures, 1)
	assert.Equal(t, "l-2", res.Lectures[0].Lecture.ID)
	// CompletedCount считается по всем лекциям, фильтр на него не влияет.
	assert.Equal(t, 1, res.CompletedCount)
}

func TestGetStudentLectures_IgnoresOtherCourses(t *testing.T) {
	store := memory.NewStore()
	mine := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	other := addCourse(t, store, "c-2", "CS401", "BBBBBB", 3)
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017", mine.ID)

	addLecture(t, store, "l-1", mine.ID, day(1), false)
	addLecture(t, store, "l-2", other.ID, day(2), false)

	h := NewGetStudentLecturesHandler(store.Students(), store.Courses(), store.Lectures())
	res, err := h.Handle(context.Background(), GetStudentLecturesQuery{StudentID: student.ID})
	require.NoError(t, err)

	require.Len(t, res.Lectures, 1)
	assert.Equal(t, "l-1", res.Lectures[0].Lecture.ID)
}

func TestGetStudentLectures_NoEnrollments(t *testing.T) {
	store := memory.NewStore()
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017")

	h := NewGetStudentLecturesHandler(store.Students(), store.Courses(), store.Lectures())
	res, err := h.Handle(context.Background(), GetStudentLecturesQuery{StudentID: student.ID})
	require.NoError(t, err)

	assert.Empty(t, res.Lectures)
	assert.Zero(t, res.CompletedCount)
}

func TestGetStudentLectures_BadStatus(t *testing.T) {
	store := memory.NewStore()

	h := NewGetStudentLecturesHandler(store.Students(), store.Courses(), store.Lectures())
	_, err := h.Handle(context.Background(), GetStudentLecturesQuery{
		StudentID: "s-1",
		Status:    "cancelled",
	})

	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestGetStudentLectures_UnknownStudent(t *testing.T) {
	store := memory.NewStore()

	h := NewGetStudentLecturesHandler(store.Students(), store.Courses(), store.Lectures())
	_, err := h.Handle(context.Background(), GetStudentLecturesQuery{StudentID: "ghost"})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
