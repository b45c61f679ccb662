package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"
)

func TestGetPendingFeedback_CompletedMinusReviewed(t *testing.T) {
	store := memory.NewStore()
	crs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017", crs.ID)

	// Five completed lectures plus one still scheduled.
	for i := 1; i <= 5; i++ {
		addLecture(t, store, "l-"+string(rune('0'+i)), crs.ID, day(i), true)
	}
	addLecture(t, store, "l-6", crs.ID, day(6), false)

	// Reviews for three of the completed ones.
	for i, lectureID := range []string{"l-1", "l-3", "l-5"} {
		addFeedback(t, store, "f-"+string(rune('1'+i)), lectureID, student.ID, feedback.UnderstandingFully, nil)
	}

	h := NewGetPendingFeedbackHandler(store.Students(), store.Courses(), store.Lectures(), store.Feedback())
	res, err := h.Handle(context.Background(), GetPendingFeedbackQuery{StudentID: student.ID})
	require.NoError(t, err)

	assert.Equal(t, 5, res.CompletedCount)
	assert.Equal(t, 3, res.SubmittedCount)
	require.Len(t, res.Pending, 2)

	// Earliest outstanding lecture first.
	assert.Equal(t, "l-2", res.Pending[0].Lecture.ID)
	assert.Equal(t, "l-4", res.Pending[1].Lecture.ID)
	assert.Equal(t, "CS301", res.Pending[0].CourseCode)
}

func TestGetPendingFeedback_CourseFilter(t *testing.T) {
	store := memory.NewStore()
	crsA := addCourse(t, store, "c-a", "CS301", "AAAAAA", 4)
	crsB := addCourse(t, store, "c-b", "CS302", "BBBBBB", 3)
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017", crsA.ID, crsB.ID)

	addLecture(t, store, "l-a", crsA.ID, day(1), true)
	addLecture(t, store, "l-b", crsB.ID, day(2), true)

	h := NewGetPendingFeedbackHandler(store.Students(), store.Courses(), store.Lectures(), store.Feedback())
	res, err := h.Handle(context.Background(), GetPendingFeedbackQuery{
		StudentID: student.ID,
		CourseID:  crsB.ID,
	})
	require.NoError(t, err)

	require.Len(t, res.Pending, 1)
	assert.Equal(t, "l-b", res.Pending[0].Lecture.ID)
	assert.Equal(t, 1, res.CompletedCount)
}

func TestGetPendingFeedback_FilterRequiresEnrollment(t *testing.T) {
	store := memory.NewStore()
	crs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	_ = crs
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017")

	h := NewGetPendingFeedbackHandler(store.Students(), store.Courses(), store.Lectures(), store.Feedback())
	_, err := h.Handle(context.Background(), GetPendingFeedbackQuery{
		StudentID: student.ID,
		CourseID:  "c-1",
	})

	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestGetPendingFeedback_NoDebts(t *testing.T) {
	store := memory.NewStore()
	crs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	student := addStudent(t, store, "s-1", "d.seitkali@university.edu", "CS-2024-017", crs.ID)

	lec := addLecture(t, store, "l-1", crs.ID, day(1), true)
	addFeedback(t, store, "f-1", lec.ID, student.ID, feedback.UnderstandingPartial, nil)

	h := NewGetPendingFeedbackHandler(store.Students(), store.Courses(), store.Lectures(), store.Feedback())
	res, err := h.Handle(context.Background(), GetPendingFeedbackQuery{StudentID: student.ID})
	require.NoError(t, err)

	assert.Empty(t, res.Pending)
	assert.Equal(t, 1, res.SubmittedCount)
}
