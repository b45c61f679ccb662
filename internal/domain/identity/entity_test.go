package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

func TestNewStudent_NormalizesEmail(t *testing.T) {
	s, err := NewStudent(NewStudentParams{
		ID:         "s-1",
		Name:       "Daniyar Seitkali",
		Email:      "  D.Seitkali@University.EDU ",
		RollNumber: "CS-2024-017",
		Department: "Computer Science",
	})
	require.NoError(t, err)

	assert.Equal(t, shared.Email("d.seitkali@university.edu"), s.Email)
	assert.Empty(t, s.EnrolledCourseIDs)
}

func TestNewStudent_Validation(t *testing.T) {
	base := NewStudentParams{
		ID:         "s-1",
		Name:       "Daniyar Seitkali",
		Email:      "d.seitkali@university.edu",
		RollNumber: "CS-2024-017",
		Department: "Computer Science",
	}

	tests := []struct {
		name   string
		mutate func(*NewStudentParams)
		want   error
	}{
		{"blank name", func(p *NewStudentParams) { p.Name = " " }, ErrInvalidName},
		{"roll with spaces", func(p *NewStudentParams) { p.RollNumber = "CS 17" }, ErrInvalidRollNumber},
		{"roll too short", func(p *NewStudentParams) { p.RollNumber = "X" }, ErrInvalidRollNumber},
		{"short department", func(p *NewStudentParams) { p.Department = "C" }, ErrInvalidDepartment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			tt.mutate(&params)
			_, err := NewStudent(params)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("bad email", func(t *testing.T) {
		params := base
		params.Email = "not-an-email"
		_, err := NewStudent(params)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestEnrollIn_PreservesOrder(t *testing.T) {
	s, err := NewStudent(NewStudentParams{
		ID:         "s-1",
		Name:       "Aruzhan Bekova",
		Email:      "a.bekova@university.edu",
		RollNumber: "CS-2024-021",
		Department: "Computer Science",
	})
	require.NoError(t, err)

	require.NoError(t, s.EnrollIn("course-b"))
	require.NoError(t, s.EnrollIn("course-a"))
	require.NoError(t, s.EnrollIn("course-c"))

	// Enrollment order, not lexicographic
	assert.Equal(t, []string{"course-b", "course-a", "course-c"}, s.EnrolledCourseIDs)
	assert.True(t, s.IsEnrolledIn("course-a"))
	assert.False(t, s.IsEnrolledIn("course-d"))
}

func TestEnrollIn_Duplicate(t *testing.T) {
	s, err := NewStudent(NewStudentParams{
		ID:         "s-1",
		Name:       "Aruzhan Bekova",
		Email:      "a.bekova@university.edu",
		RollNumber: "CS-2024-021",
		Department: "Computer Science",
	})
	require.NoError(t, err)

	require.NoError(t, s.EnrollIn("course-a"))
	assert.ErrorIs(t, s.EnrollIn("course-a"), shared.ErrAlreadyEnrolled)
	assert.Len(t, s.EnrolledCourseIDs, 1)
}

func TestNewProfessor(t *testing.T) {
	p, err := NewProfessor(NewProfessorParams{
		ID:         "p-1",
		Name:       "Aliya Nurkhanova",
		Email:      "A.Nurkhanova@University.edu",
		Department: "Computer Science",
	})
	require.NoError(t, err)

	assert.Equal(t, shared.Email("a.nurkhanova@university.edu"), p.Email)
	assert.Empty(t, p.PasswordHash)
}

func TestRollNumber_IsValid(t *testing.T) {
	assert.True(t, RollNumber("CS-2024-017").IsValid())
	assert.False(t, RollNumber("A").IsValid())
	assert.False(t, RollNumber("has space").IsValid())
	assert.False(t, RollNumber("tab\there").IsValid())
}
