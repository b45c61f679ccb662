package lecture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

func validParams() NewLectureParams {
	return NewLectureParams{
		ID:              "lec-1",
		CourseID:        "course-1",
		Title:           "Consensus and Raft",
		Date:            time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		Topics:          []string{"leader election", "log replication"},
	}
}

func TestNewLecture_StartsScheduled(t *testing.T) {
	lec, err := NewLecture(validParams())
	require.NoError(t, err)

	assert.Equal(t, StatusScheduled, lec.Status)
	assert.False(t, lec.IsCompleted())
	assert.Equal(t, []string{"leader election", "log replication"}, lec.Topics)
}

func TestNewLecture_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewLectureParams)
		want   error
	}{
		{"empty title", func(p *NewLectureParams) { p.Title = "  " }, ErrInvalidTitle},
		{"zero date", func(p *NewLectureParams) { p.Date = time.Time{} }, ErrInvalidDate},
		{"zero duration", func(p *NewLectureParams) { p.DurationMinutes = 0 }, ErrInvalidDuration},
		{"duration too long", func(p *NewLectureParams) { p.DurationMinutes = 601 }, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			_, err := NewLecture(params)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewLecture_DropsBlankTopics(t *testing.T) {
	params := validParams()
	params.Topics = []string{" safety ", "", "  "}

	lec, err := NewLecture(params)
	require.NoError(t, err)
	assert.Equal(t, []string{"safety"}, lec.Topics)
}

func TestTransitionMatrix(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusScheduled, StatusLive, true},
		{StatusScheduled, StatusCompleted, true},
		{StatusLive, StatusCompleted, true},
		{StatusScheduled, StatusScheduled, false},
		{StatusLive, StatusScheduled, false},
		{StatusLive, StatusLive, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusLive, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransitionTo_IllegalTransition(t *testing.T) {
	lec, err := NewLecture(validParams())
	require.NoError(t, err)

	require.NoError(t, lec.TransitionTo(StatusCompleted))
	assert.True(t, lec.IsCompleted())

	// Completed is terminal
	err = lec.TransitionTo(StatusLive)
	assert.ErrorIs(t, err, shared.ErrIllegalTransition)
	assert.Equal(t, StatusCompleted, lec.Status)
}

func TestTransitionTo_InvalidStatus(t *testing.T) {
	lec, err := NewLecture(validParams())
	require.NoError(t, err)

	assert.ErrorIs(t, lec.TransitionTo(Status("cancelled")), ErrInvalidStatus)
}

func TestHasTopic_CaseInsensitive(t *testing.T) {
	lec, err := NewLecture(validParams())
	require.NoError(t, err)

	assert.True(t, lec.HasTopic("Leader Election"))
	assert.False(t, lec.HasTopic("paxos"))
}
