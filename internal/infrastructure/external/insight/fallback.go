package insight

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/insight"
	"github.com/classpulse/classpulse-core/pkg/timeutil"
)

// Sentiment thresholds on the 0.0-1.0 understanding scale.
const (
	positiveThreshold = 0.7
	negativeThreshold = 0.4
)

// difficultShareThreshold marks a topic as worth revising when at least
// this share of its ratings flagged it difficult.
const difficultShareThreshold = 0.3

// maxRevisionItems caps the revision plan length.
const maxRevisionItems = 5

// LocalAnalyzer produces a deterministic report from the digest alone:
// averages, frequency-ranked difficult topics and a simple revision plan.
// It never fails on a well-formed digest, which is what makes the remote
// client's no-error guarantee possible.
type LocalAnalyzer struct {
	// now is swappable for tests.
	now func() time.Time
}

// compile-time interface check
var _ insight.Analyzer = (*LocalAnalyzer)(nil)

// NewLocalAnalyzer creates a new local analyzer.
func NewLocalAnalyzer() *LocalAnalyzer {
	return &LocalAnalyzer{now: time.Now}
}

// Analyze builds a report from aggregate statistics only.
func (a *LocalAnalyzer) Analyze(_ context.Context, digest insight.CourseDigest) (*insight.Report, error) {
	report := &insight.Report{
		DifficultTopics: make([]insight.TopicInsight, 0),
		RevisionPlan:    make([]insight.RevisionItem, 0),
		Source:          SourceLocal,
		GeneratedAt:     a.now().UTC(),
	}

	var scoreSum float64
	var feedbackTotal int
	for _, l := range digest.Lectures {
		scoreSum += l.AvgUnderstanding * float64(l.FeedbackCount)
		feedbackTotal += l.FeedbackCount
	}
	if feedbackTotal > 0 {
		report.AvgUnderstanding = scoreSum / float64(feedbackTotal)
	}
	report.Sentiment = sentimentOf(report.AvgUnderstanding, feedbackTotal)

	report.DifficultTopics = a.rankDifficultTopics(digest)
	report.RevisionPlan = a.buildRevisionPlan(report.DifficultTopics)
	report.Summary = a.summarize(digest, report, feedbackTotal)

	return report, nil
}

// sentimentOf maps average understanding to a sentiment label.
func sentimentOf(avg float64, feedbackTotal int) insight.Sentiment {
	switch {
	case feedbackTotal == 0:
		return insight.SentimentNeutral
	case avg >= positiveThreshold:
		return insight.SentimentPositive
	case avg < negativeThreshold:
		return insight.SentimentNegative
	default:
		return insight.SentimentNeutral
	}
}

// rankDifficultTopics merges topic signals across lectures and ranks them
// by the share of difficult ratings, then by rating volume.
func (a *LocalAnalyzer) rankDifficultTopics(digest insight.CourseDigest) []insight.TopicInsight {
	type agg struct {
		ratings   int
		difficult int
	}
	byTopic := make(map[string]*agg)
	order := make([]string, 0)

	for _, l := range digest.Lectures {
		for _, t := range l.Topics {
			entry, ok := byTopic[t.Topic]
			if !ok {
				entry = &agg{}
				byTopic[t.Topic] = entry
				order = append(order, t.Topic)
			}
			entry.ratings += t.RatingCount
			entry.difficult += t.DifficultCount
		}
	}

	insights := make([]insight.TopicInsight, 0, len(order))
	for _, topic := range order {
		entry := byTopic[topic]
		if entry.ratings == 0 {
			continue
		}
		share := float64(entry.difficult) / float64(entry.ratings)
		if share < difficultShareThreshold {
			continue
		}
		insights = append(insights, insight.TopicInsight{
			Topic:           topic,
			DifficultyShare: share,
			Note:            fmt.Sprintf("%d of %d ratings flagged this topic as difficult", entry.difficult, entry.ratings),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].DifficultyShare != insights[j].DifficultyShare {
			return insights[i].DifficultyShare > insights[j].DifficultyShare
		}
		return byTopic[insights[i].Topic].ratings > byTopic[insights[j].Topic].ratings
	})
	return insights
}

// buildRevisionPlan schedules the hardest topics over the coming days,
// one topic per day starting tomorrow.
func (a *LocalAnalyzer) buildRevisionPlan(topics []insight.TopicInsight) []insight.RevisionItem {
	plan := make([]insight.RevisionItem, 0, maxRevisionItems)
	start := timeutil.StartOfDay(a.now())

	for i, t := range topics {
		if i >= maxRevisionItems {
			break
		}
		plan = append(plan, insight.RevisionItem{
			Topic:         t.Topic,
			SuggestedDate: start.AddDate(0, 0, i+1),
			Reason:        fmt.Sprintf("%.0f%% of students found this topic difficult", t.DifficultyShare*100),
		})
	}
	return plan
}

// summarize writes a short plain-text course summary.
func (a *LocalAnalyzer) summarize(digest insight.CourseDigest, report *insight.Report, feedbackTotal int) string {
	if feedbackTotal == 0 {
		return fmt.Sprintf("No feedback recorded yet for %s across %d completed lectures.",
			digest.CourseName, len(digest.Lectures))
	}
	return fmt.Sprintf(
		"%s: %d feedback entries across %d completed lectures, average understanding %.0f%%, %d topics need revision.",
		digest.CourseName, feedbackTotal, len(digest.Lectures),
		report.AvgUnderstanding*100, len(report.DifficultTopics),
	)
}
