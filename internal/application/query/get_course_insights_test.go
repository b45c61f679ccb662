package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/insight"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"
)

// captureAnalyzer records the digest it was handed and returns a canned report.
type captureAnalyzer struct {
	digest insight.CourseDigest
	err    error
}

func (a *captureAnalyzer) Analyze(ctx context.Context, digest insight.CourseDigest) (*insight.Report, error) {
	a.digest = digest
	if a.err != nil {
		return nil, a.err
	}
	return &insight.Report{
		Summary:     "canned",
		Sentiment:   insight.SentimentNeutral,
		Source:      "remote",
		GeneratedAt: time.Now(),
	}, nil
}

func TestGetCourseInsights_BuildsDigestFromCompletedLectures(t *testing.T) {
	store := memory.NewStore()
	crs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	s1 := addStudent(t, store, "s-1", "a@university.edu", "CS-2024-001", crs.ID)
	s2 := addStudent(t, store, "s-2", "b@university.edu", "CS-2024-002", crs.ID)

	done := addLecture(t, store, "l-1", crs.ID, day(1), true)
	addLecture(t, store, "l-2", crs.ID, day(2), false)

	addFeedback(t, store, "f-1", done.ID, s1.ID, feedback.UnderstandingFully, []feedback.TopicRating{
		{Topic: "consistency", Rating: 4},
	})
	addFeedback(t, store, "f-2", done.ID, s2.ID, feedback.UnderstandingNeedClarity, []feedback.TopicRating{
		{Topic: "consistency", Rating: 1},
	})

	analyzer := &captureAnalyzer{}
	h := NewGetCourseInsightsHandler(store.Courses(), store.Students(), store.Lectures(), store.Feedback(), analyzer)
	res, err := h.Handle(context.Background(), GetCourseInsightsQuery{CourseID: crs.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, res.LecturesAnalyzed)
	assert.Equal(t, 2, res.FeedbackAnalyzed)
	assert.Equal(t, "canned", res.Report.Summary)

	// The scheduled lecture must not leak into the digest.
	require.Len(t, analyzer.digest.Lectures, 1)
	ld := analyzer.digest.Lectures[0]
	assert.Equal(t, done.ID, ld.LectureID)
	assert.Equal(t, 1, ld.FullyCount)
	assert.Equal(t, 1, ld.NeedClarityCount)
	assert.InDelta(t, 0.5, ld.AvgUnderstanding, 0.0001)
	assert.Equal(t, 2, analyzer.digest.EnrolledCount)

	require.NotEmpty(t, ld.Topics)
	assert.Equal(t, "consistency", ld.Topics[0].Topic)
	assert.Equal(t, 2, ld.Topics[0].RatingCount)
	assert.Equal(t, 1, ld.Topics[0].DifficultCount)
	assert.InDelta(t, 2.5, ld.Topics[0].AvgRating, 0.0001)
}

func TestGetCourseInsights_CommentsAreOptIn(t *testing.T) {
	store := memory.NewStore()
	crs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)
	student := addStudent(t, store, "s-1", "a@university.edu", "CS-2024-001", crs.ID)
	done := addLecture(t, store, "l-1", crs.ID, day(1), true)

	f, err := feedback.NewFeedback(feedback.NewFeedbackParams{
		ID:            "f-1",
		LectureID:     done.ID,
		StudentID:     student.ID,
		Understanding: feedback.UnderstandingPartial,
		Comment:       "please slow down",
	})
	require.NoError(t, err)
	require.NoError(t, store.Feedback().Create(context.Background(), f))

	analyzer := &captureAnalyzer{}
	h := NewGetCourseInsightsHandler(store.Courses(), store.Students(), store.Lectures(), store.Feedback(), analyzer)

	_, err = h.Handle(context.Background(), GetCourseInsightsQuery{CourseID: crs.ID})
	require.NoError(t, err)
	assert.Empty(t, analyzer.digest.Lectures[0].Comments)

	_, err = h.Handle(context.Background(), GetCourseInsightsQuery{CourseID: crs.ID, IncludeComments: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"please slow down"}, analyzer.digest.Lectures[0].Comments)
}

func TestGetCourseInsights_AnalyzerFailure(t *testing.T) {
	store := memory.NewStore()
	crs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)

	analyzer := &captureAnalyzer{err: errors.New("model overloaded")}
	h := NewGetCourseInsightsHandler(store.Courses(), store.Students(), store.Lectures(), store.Feedback(), analyzer)
	_, err := h.Handle(context.Background(), GetCourseInsightsQuery{CourseID: crs.ID})

	assert.ErrorIs(t, err, shared.ErrExternalService)
}

func TestGetCourseInsights_NoAnalyzerConfigured(t *testing.T) {
	store := memory.NewStore()
	crs := addCourse(t, store, "c-1", "CS301", "AAAAAA", 4)

	h := NewGetCourseInsightsHandler(store.Courses(), store.Students(), store.Lectures(), store.Feedback(), nil)
	_, err := h.Handle(context.Background(), GetCourseInsightsQuery{CourseID: crs.ID})

	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
}
