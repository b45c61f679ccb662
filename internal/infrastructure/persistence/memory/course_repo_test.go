package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

func mustCourse(t *testing.T, id, code string, enrollCode shared.EnrollmentCode) *course.Course {
	t.Helper()
	c, err := course.NewCourse(course.NewCourseParams{
		ID:             id,
		Code:           code,
		Name:           "Course " + code,
		ProfessorID:    "p-1",
		Semester:       "Fall 2026",
		Department:     "Computer Science",
		Credits:        4,
		EnrollmentCode: enrollCode,
	})
	require.NoError(t, err)
	return c
}

func TestCourseRepository_EnrollmentCodeUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()

	require.NoError(t, repo.Create(ctx, mustCourse(t, "c-1", "CS301", "AAAAAA")))

	err := repo.Create(ctx, mustCourse(t, "c-2", "CS302", "AAAAAA"))
	assert.ErrorIs(t, err, shared.ErrValidation)

	exists, err := repo.ExistsByEnrollmentCode(ctx, "AAAAAA")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCourseRepository_GetByEnrollmentCode(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()

	require.NoError(t, repo.Create(ctx, mustCourse(t, "c-1", "CS301", "AB12CD")))

	c, err := repo.GetByEnrollmentCode(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)

	_, err = repo.GetByEnrollmentCode(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, course.ErrCourseNotFound)
}

func TestCourseRepository_GetByIDs_PreservesInputOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()

	require.NoError(t, repo.Create(ctx, mustCourse(t, "c-1", "CS301", "AAAAA1")))
	require.NoError(t, repo.Create(ctx, mustCourse(t, "c-2", "CS302", "AAAAA2")))
	require.NoError(t, repo.Create(ctx, mustCourse(t, "c-3", "CS303", "AAAAA3")))

	// The caller's order (a student's enrollment order) wins, and
	// missing IDs are skipped silently
	courses, err := repo.GetByIDs(ctx, []string{"c-3", "missing", "c-1"})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "c-3", courses[0].ID)
	assert.Equal(t, "c-1", courses[1].ID)
}

func TestCourseRepository_GetByProfessor(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()

	require.NoError(t, repo.Create(ctx, mustCourse(t, "c-1", "CS301", "AAAAA1")))
	require.NoError(t, repo.Create(ctx, mustCourse(t, "c-2", "CS302", "AAAAA2")))

	courses, err := repo.GetByProfessor(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	none, err := repo.GetByProfessor(ctx, "p-unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}
