package query

import (
	"context"
	"errors"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/insight"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET COURSE INSIGHTS QUERY
// Агрегирует отзывы завершённых лекций курса в дайджест и передаёт его
// анализатору. Анализатор (удалённый сервис с локальным фолбэком) обязан
// вернуть отчёт для корректного дайджеста - сбой внешнего сервиса
// не виден вызывающему.
// ══════════════════════════════════════════════════════════════════════════════

// GetCourseInsightsQuery содержит параметры запроса аналитики курса.
type GetCourseInsightsQuery struct {
	// CourseID - курс для анализа.
	CourseID string

	// IncludeComments - передавать ли анализатору свободные комментарии.
	IncludeComments bool
}

// Validate проверяет корректность параметров запроса.
func (q *GetCourseInsightsQuery) Validate() error {
	if q.CourseID == "" {
		return errors.New("course id is required")
	}
	return nil
}

// GetCourseInsightsResult содержит результат запроса аналитики.
type GetCourseInsightsResult struct {
	// Report - отчёт анализатора.
	Report *insight.Report `json:"report"`

	// LecturesAnalyzed - количество завершённых лекций в дайджесте.
	LecturesAnalyzed int `json:"lectures_analyzed"`

	// FeedbackAnalyzed - количество отзывов в дайджесте.
	FeedbackAnalyzed int `json:"feedback_analyzed"`
}

// GetCourseInsightsHandler обрабатывает запросы аналитики курса.
type GetCourseInsightsHandler struct {
	courseRepo   course.Repository
	studentRepo  identity.StudentRepository
	lectureRepo  lecture.Repository
	feedbackRepo feedback.Repository
	analyzer     insight.Analyzer
}

// NewGetCourseInsightsHandler создаёт новый обработчик аналитики.
func NewGetCourseInsightsHandler(
	courseRepo course.Repository,
	studentRepo identity.StudentRepository,
	lectureRepo lecture.Repository,
	feedbackRepo feedback.Repository,
	analyzer insight.Analyzer,
) *GetCourseInsightsHandler {
	return &GetCourseInsightsHandler{
		courseRepo:   courseRepo,
		studentRepo:  studentRepo,
		lectureRepo:  lectureRepo,
		feedbackRepo: feedbackRepo,
		analyzer:     analyzer,
	}
}

// Handle выполняет запрос аналитики курса.
func (h *GetCourseInsightsHandler) Handle(ctx context.Context, query GetCourseInsightsQuery) (*GetCourseInsightsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetCourseInsights", shared.ErrValidation, err.Error(), err)
	}
	if h.analyzer == nil {
		return nil, shared.NewDomainError("query", "GetCourseInsights", shared.ErrServiceUnavailable,
			"insight analyzer is not configured")
	}

	crs, err := h.courseRepo.GetByID(ctx, query.CourseID)
	if err != nil {
		return nil, shared.WrapError("query", "GetCourseInsights", shared.ErrNotFound, "course not found", err)
	}

	enrolled, err := h.studentRepo.GetEnrolledInCourse(ctx, crs.ID)
	if err != nil {
		return nil, err
	}

	completed, err := h.lectureRepo.GetCompletedByCourse(ctx, crs.ID)
	if err != nil {
		return nil, err
	}

	digest := insight.CourseDigest{
		CourseID:      crs.ID,
		CourseName:    crs.Name,
		EnrolledCount: len(enrolled),
		Lectures:      make([]insight.LectureDigest, 0, len(completed)),
	}

	feedbackTotal := 0
	for _, l := range completed {
		entries, err := h.feedbackRepo.GetByLecture(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		feedbackTotal += len(entries)
		digest.Lectures = append(digest.Lectures, buildLectureDigest(l, entries, query.IncludeComments))
	}

	report, err := h.analyzer.Analyze(ctx, digest)
	if err != nil {
		return nil, shared.WrapError("query", "GetCourseInsights", shared.ErrExternalService,
			"insight analysis failed", err)
	}

	return &GetCourseInsightsResult{
		Report:           report,
		LecturesAnalyzed: len(completed),
		FeedbackAnalyzed: feedbackTotal,
	}, nil
}

// buildLectureDigest агрегирует отзывы одной лекции.
func buildLectureDigest(l *lecture.Lecture, entries []*feedback.Feedback, includeComments bool) insight.LectureDigest {
	d := insight.LectureDigest{
		LectureID:     l.ID,
		Title:         l.Title,
		Date:          l.Date,
		FeedbackCount: len(entries),
	}

	type topicAgg struct {
		ratings   int
		difficult int
		ratingSum int
	}
	byTopic := make(map[string]*topicAgg)
	topicOrder := make([]string, 0, len(l.Topics))
	for _, t := range l.Topics {
		byTopic[t] = &topicAgg{}
		topicOrder = append(topicOrder, t)
	}

	var scoreSum float64
	for _, f := range entries {
		scoreSum += f.Understanding.Score()
		switch f.Understanding {
		case feedback.UnderstandingFully:
			d.FullyCount++
		case feedback.UnderstandingPartial:
			d.PartialCount++
		default:
			d.NeedClarityCount++
		}

		for _, r := range f.TopicRatings {
			agg, ok := byTopic[r.Topic]
			if !ok {
				// Студенты могут оценить тему, не заявленную лекцией.
				agg = &topicAgg{}
				byTopic[r.Topic] = agg
				topicOrder = append(topicOrder, r.Topic)
			}
			agg.ratings++
			agg.ratingSum += r.Rating
			if r.IsDifficult() {
				agg.difficult++
			}
		}

		if includeComments && f.Comment != "" {
			d.Comments = append(d.Comments, f.Comment)
		}
	}

	if len(entries) > 0 {
		d.AvgUnderstanding = scoreSum / float64(len(entries))
	}

	d.Topics = make([]insight.TopicSignal, 0, len(topicOrder))
	for _, topic := range topicOrder {
		agg := byTopic[topic]
		signal := insight.TopicSignal{
			Topic:          topic,
			RatingCount:    agg.ratings,
			DifficultCount: agg.difficult,
		}
		if agg.ratings > 0 {
			signal.AvgRating = float64(agg.ratingSum) / float64(agg.ratings)
		}
		d.Topics = append(d.Topics, signal)
	}
	return d
}
