package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

func TestPublishGrades_SweepsDrafts(t *testing.T) {
	env := newTestEnv()
	crs := env.seedCourse(t, env.seedProfessor(t))
	assessment := env.seedAssessment(t, crs.ID, 40)

	record := NewRecordGradeHandler(env.store.Grades(), env.store.Assessments(), env.store.Students(), env.bus)
	for i, email := range []string{"a@university.edu", "b@university.edu", "c@university.edu"} {
		studentID := env.seedStudent(t, email, "CS-2024-10"+string(rune('0'+i)))
		env.enroll(t, studentID, crs.EnrollmentCode)
		_, err := record.Handle(context.Background(), RecordGradeCommand{
			AssessmentID: assessment.ID,
			StudentID:    studentID,
			Marks:        marks(float64(60 + 10*i)),
		})
		require.NoError(t, err)
	}

	publish := NewPublishGradesHandler(env.store.Grades(), env.store.Assessments(), env.bus, nil)
	res, err := publish.Handle(context.Background(), PublishGradesCommand{AssessmentID: assessment.ID})
	require.NoError(t, err)

	assert.Equal(t, 3, res.PublishedCount)
	assert.Equal(t, 0, res.SkippedCount)
	assert.Equal(t, 40.0, res.WeightSum)
	assert.False(t, res.OverWeighted)
	assert.True(t, env.bus.has(shared.EventGradesPublished))

	all, err := env.store.Grades().GetByAssessment(context.Background(), assessment.ID)
	require.NoError(t, err)
	for _, g := range all {
		assert.Equal(t, gradebook.StatusPublished, g.Status)
	}
}

func TestPublishGrades_RepublishSkipsPublished(t *testing.T) {
	env := newTestEnv()
	crs := env.seedCourse(t, env.seedProfessor(t))
	studentID := env.seedStudent(t, "d.seitkali@university.edu", "CS-2024-017")
	env.enroll(t, studentID, crs.EnrollmentCode)
	assessment := env.seedAssessment(t, crs.ID, 40)

	record := NewRecordGradeHandler(env.store.Grades(), env.store.Assessments(), env.store.Students(), env.bus)
	_, err := record.Handle(context.Background(), RecordGradeCommand{
		AssessmentID: assessment.ID,
		StudentID:    studentID,
		Marks:        marks(88),
	})
	require.NoError(t, err)

	publish := NewPublishGradesHandler(env.store.Grades(), env.store.Assessments(), env.bus, nil)
	_, err = publish.Handle(context.Background(), PublishGradesCommand{AssessmentID: assessment.ID})
	require.NoError(t, err)

	res, err := publish.Handle(context.Background(), PublishGradesCommand{AssessmentID: assessment.ID})
	require.NoError(t, err)

	assert.Equal(t, 0, res.PublishedCount)
	assert.Equal(t, 1, res.SkippedCount)
}

func TestPublishGrades_OverWeightedIsSoft(t *testing.T) {
	env := newTestEnv()
	crs := env.seedCourse(t, env.seedProfessor(t))
	studentID := env.seedStudent(t, "d.seitkali@university.edu", "CS-2024-017")
	env.enroll(t, studentID, crs.EnrollmentCode)

	// 60 + 60 = 120 > 100: the weight sum is a warning, not a gate.
	first := env.seedAssessment(t, crs.ID, 60)
	env.seedAssessment(t, crs.ID, 60)

	record := NewRecordGradeHandler(env.store.Grades(), env.store.Assessments(), env.store.Students(), env.bus)
	_, err := record.Handle(context.Background(), RecordGradeCommand{
		AssessmentID: first.ID,
		StudentID:    studentID,
		Marks:        marks(70),
	})
	require.NoError(t, err)

	publish := NewPublishGradesHandler(env.store.Grades(), env.store.Assessments(), env.bus, nil)
	res, err := publish.Handle(context.Background(), PublishGradesCommand{AssessmentID: first.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, res.PublishedCount)
	assert.Equal(t, 120.0, res.WeightSum)
	assert.True(t, res.OverWeighted)
}

func TestPublishGrades_UnknownAssessment(t *testing.T) {
	env := newTestEnv()

	publish := NewPublishGradesHandler(env.store.Grades(), env.store.Assessments(), env.bus, nil)
	_, err := publish.Handle(context.Background(), PublishGradesCommand{AssessmentID: "ghost"})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
