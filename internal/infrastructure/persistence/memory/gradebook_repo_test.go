package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

func TestGradeRepository_PairUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewGradeRepository()

	require.NoError(t, repo.Create(ctx, mustGrade(t, "g-1", "a-1", "s-1", marksOf(70))))

	err := repo.Create(ctx, mustGrade(t, "g-2", "a-1", "s-1", marksOf(80)))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestGradeRepository_GetByAssessmentAndStudent(t *testing.T) {
	ctx := context.Background()
	repo := NewGradeRepository()

	require.NoError(t, repo.Create(ctx, mustGrade(t, "g-1", "a-1", "s-1", marksOf(70))))

	g, err := repo.GetByAssessmentAndStudent(ctx, "a-1", "s-1")
	require.NoError(t, err)
	assert.Equal(t, "g-1", g.ID)

	_, err = repo.GetByAssessmentAndStudent(ctx, "a-1", "s-2")
	assert.ErrorIs(t, err, gradebook.ErrGradeNotFound)
}

func TestGradeRepository_GetPublishedByStudent_FiltersDrafts(t *testing.T) {
	ctx := context.Background()
	repo := NewGradeRepository()

	draft := mustGrade(t, "g-1", "a-1", "s-1", marksOf(70))
	published := mustGrade(t, "g-2", "a-2", "s-1", marksOf(90))
	published.Publish()

	require.NoError(t, repo.Create(ctx, draft))
	require.NoError(t, repo.Create(ctx, published))

	visible, err := repo.GetPublishedByStudent(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "g-2", visible[0].ID)

	all, err := repo.GetByStudent(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGradeRepository_UpdatePersistsStatusChange(t *testing.T) {
	ctx := context.Background()
	repo := NewGradeRepository()

	g := mustGrade(t, "g-1", "a-1", "s-1", marksOf(70))
	require.NoError(t, repo.Create(ctx, g))

	g.Publish()
	require.NoError(t, repo.Update(ctx, g))

	stored, err := repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	assert.True(t, stored.IsPublished())

	// Updating a grade that was never created fails
	ghost := mustGrade(t, "g-ghost", "a-9", "s-9", nil)
	assert.ErrorIs(t, repo.Update(ctx, ghost), gradebook.ErrGradeNotFound)
}

func TestAssessmentRepository_GetByCourse(t *testing.T) {
	ctx := context.Background()
	repo := NewAssessmentRepository()

	for i, name := range []string{"Quiz 1", "Midterm", "Final"} {
		a, err := gradebook.NewAssessment(gradebook.NewAssessmentParams{
			ID:        name,
			CourseID:  "c-1",
			Name:      name,
			Type:      gradebook.TypeQuiz,
			MaxMarks:  100,
			WeightPct: float64(10 + i*10),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, a))
	}

	assessments, err := repo.GetByCourse(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, assessments, 3)

	// Creation order is preserved
	assert.Equal(t, "Quiz 1", assessments[0].Name)
	assert.Equal(t, "Final", assessments[2].Name)

	n, err := repo.CountByCourse(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
