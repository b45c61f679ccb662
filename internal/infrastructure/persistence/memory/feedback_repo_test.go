package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

func TestFeedbackRepository_PairUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()

	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-1", "lec-1", "s-1")))

	// Same (student, lecture) pair under a different ID
	err := repo.Create(ctx, mustFeedback(t, "f-2", "lec-1", "s-1"))
	assert.ErrorIs(t, err, shared.ErrDuplicateFeedback)

	// Same student, different lecture is fine
	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-3", "lec-2", "s-1")))

	// Same lecture, different student is fine
	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-4", "lec-1", "s-2")))
}

func TestFeedbackRepository_ExistsByStudentAndLecture(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()

	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-1", "lec-1", "s-1")))

	exists, err := repo.ExistsByStudentAndLecture(ctx, "s-1", "lec-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByStudentAndLecture(ctx, "s-1", "lec-2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFeedbackRepository_GetByLecture(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()

	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-1", "lec-1", "s-1")))
	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-2", "lec-1", "s-2")))
	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-3", "lec-2", "s-1")))

	byLecture, err := repo.GetByLecture(ctx, "lec-1")
	require.NoError(t, err)
	assert.Len(t, byLecture, 2)

	byLectures, err := repo.GetByLectures(ctx, []string{"lec-1", "lec-2"})
	require.NoError(t, err)
	assert.Len(t, byLectures, 3)
}

func TestFeedbackRepository_CountByStudentInLectures(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()

	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-1", "lec-1", "s-1")))
	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-2", "lec-2", "s-1")))
	require.NoError(t, repo.Create(ctx, mustFeedback(t, "f-3", "lec-9", "s-1")))

	// Only lectures in the given scope count
	n, err := repo.CountByStudentInLectures(ctx, "s-1", []string{"lec-1", "lec-2", "lec-3"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountByStudentInLectures(ctx, "s-2", []string{"lec-1"})
	require.NoError(t, err)
	assert.Zero(t, n)
}
