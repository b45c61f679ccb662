// Package insight implements the insight service API client with a
// deterministic local fallback. The client talks to an external analysis
// endpoint; when it is unreachable, misbehaving, or circuit-broken, the
// local analyzer produces the report instead, so callers never see a
// failure for a valid digest.
package insight

import (
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/insight"
)

// ══════════════════════════════════════════════════════════════════════════════
// API REQUEST / RESPONSE DTOs
// ══════════════════════════════════════════════════════════════════════════════

// analyzeRequest is the wire form of a course digest.
type analyzeRequest struct {
	CourseID      string             `json:"course_id"`
	CourseName    string             `json:"course_name"`
	EnrolledCount int                `json:"enrolled_count"`
	Lectures      []lectureDigestDTO `json:"lectures"`
}

type lectureDigestDTO struct {
	LectureID        string           `json:"lecture_id"`
	Title            string           `json:"title"`
	Date             time.Time        `json:"date"`
	FeedbackCount    int              `json:"feedback_count"`
	AvgUnderstanding float64          `json:"avg_understanding"`
	FullyCount       int              `json:"fully_count"`
	PartialCount     int              `json:"partial_count"`
	NeedClarityCount int              `json:"need_clarity_count"`
	Topics           []topicSignalDTO `json:"topics"`
	Comments         []string         `json:"comments,omitempty"`
}

type topicSignalDTO struct {
	Topic          string  `json:"topic"`
	RatingCount    int     `json:"rating_count"`
	DifficultCount int     `json:"difficult_count"`
	AvgRating      float64 `json:"avg_rating"`
}

// analyzeResponse is the wire form of an insight report.
type analyzeResponse struct {
	Summary          string            `json:"summary"`
	Sentiment        string            `json:"sentiment"`
	AvgUnderstanding float64           `json:"avg_understanding"`
	DifficultTopics  []topicInsightDTO `json:"difficult_topics"`
	RevisionPlan     []revisionItemDTO `json:"revision_plan"`
}

type topicInsightDTO struct {
	Topic           string  `json:"topic"`
	DifficultyShare float64 `json:"difficulty_share"`
	Note            string  `json:"note,omitempty"`
}

type revisionItemDTO struct {
	Topic         string    `json:"topic"`
	SuggestedDate time.Time `json:"suggested_date"`
	Reason        string    `json:"reason,omitempty"`
}

// errorResponse is the wire form of an API error.
type errorResponse struct {
	Error string `json:"error"`
}

// ══════════════════════════════════════════════════════════════════════════════
// MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// toRequest converts a domain digest to the wire form.
func toRequest(d insight.CourseDigest) analyzeRequest {
	req := analyzeRequest{
		CourseID:      d.CourseID,
		CourseName:    d.CourseName,
		EnrolledCount: d.EnrolledCount,
		Lectures:      make([]lectureDigestDTO, 0, len(d.Lectures)),
	}
	for _, l := range d.Lectures {
		dto := lectureDigestDTO{
			LectureID:        l.LectureID,
			Title:            l.Title,
			Date:             l.Date,
			FeedbackCount:    l.FeedbackCount,
			AvgUnderstanding: l.AvgUnderstanding,
			FullyCount:       l.FullyCount,
			PartialCount:     l.PartialCount,
			NeedClarityCount: l.NeedClarityCount,
			Topics:           make([]topicSignalDTO, 0, len(l.Topics)),
			Comments:         l.Comments,
		}
		for _, t := range l.Topics {
			dto.Topics = append(dto.Topics, topicSignalDTO{
				Topic:          t.Topic,
				RatingCount:    t.RatingCount,
				DifficultCount: t.DifficultCount,
				AvgRating:      t.AvgRating,
			})
		}
		req.Lectures = append(req.Lectures, dto)
	}
	return req
}

// toReport converts a wire response to the domain report.
func toReport(resp analyzeResponse) *insight.Report {
	report := &insight.Report{
		Summary:          resp.Summary,
		Sentiment:        insight.Sentiment(resp.Sentiment),
		AvgUnderstanding: resp.AvgUnderstanding,
		DifficultTopics:  make([]insight.TopicInsight, 0, len(resp.DifficultTopics)),
		RevisionPlan:     make([]insight.RevisionItem, 0, len(resp.RevisionPlan)),
		Source:           SourceRemote,
		GeneratedAt:      time.Now().UTC(),
	}
	for _, t := range resp.DifficultTopics {
		report.DifficultTopics = append(report.DifficultTopics, insight.TopicInsight{
			Topic:           t.Topic,
			DifficultyShare: t.DifficultyShare,
			Note:            t.Note,
		})
	}
	for _, r := range resp.RevisionPlan {
		report.RevisionPlan = append(report.RevisionPlan, insight.RevisionItem{
			Topic:         r.Topic,
			SuggestedDate: r.SuggestedDate,
			Reason:        r.Reason,
		})
	}
	return report
}
