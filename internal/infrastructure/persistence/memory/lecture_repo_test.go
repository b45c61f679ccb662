package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/lecture"
)

func TestLectureRepository_SortedByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	// Inserted out of chronological order on purpose
	require.NoError(t, repo.Create(ctx, mustLecture(t, "lec-3", "c-1", base.AddDate(0, 0, 14))))
	require.NoError(t, repo.Create(ctx, mustLecture(t, "lec-1", "c-1", base)))
	require.NoError(t, repo.Create(ctx, mustLecture(t, "lec-2", "c-1", base.AddDate(0, 0, 7))))

	lectures, err := repo.GetByCourse(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, lectures, 3)
	assert.Equal(t, "lec-1", lectures[0].ID)
	assert.Equal(t, "lec-2", lectures[1].ID)
	assert.Equal(t, "lec-3", lectures[2].ID)
}

func TestLectureRepository_GetCompletedByCourse(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	done := mustLecture(t, "lec-1", "c-1", base)
	require.NoError(t, done.TransitionTo(lecture.StatusCompleted))

	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.Create(ctx, mustLecture(t, "lec-2", "c-1", base.AddDate(0, 0, 7))))

	completed, err := repo.GetCompletedByCourse(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "lec-1", completed[0].ID)
}

func TestLectureRepository_GetByCourses_MergesAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, mustLecture(t, "lec-a", "c-1", base.AddDate(0, 0, 3))))
	require.NoError(t, repo.Create(ctx, mustLecture(t, "lec-b", "c-2", base)))

	lectures, err := repo.GetByCourses(ctx, []string{"c-1", "c-2"})
	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.Equal(t, "lec-b", lectures[0].ID)
	assert.Equal(t, "lec-a", lectures[1].ID)
}

func TestLectureRepository_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository()

	ghost := mustLecture(t, "lec-ghost", "c-1", time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, repo.Update(ctx, ghost), lecture.ErrLectureNotFound)
}
