// Package insight содержит контракт аналитического помощника: типы дайджеста
// отзывов и отчёта с рекомендациями. Реализации (удалённый сервис и локальный
// фолбэк) находятся в infrastructure/external/insight.
package insight

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// DIGEST - вход анализатора
// ══════════════════════════════════════════════════════════════════════════════

// TopicSignal - агрегированный сигнал по одной теме курса.
type TopicSignal struct {
	// Topic - название темы.
	Topic string

	// RatingCount - сколько оценок тема получила.
	RatingCount int

	// DifficultCount - сколько из них отметили тему сложной.
	DifficultCount int

	// AvgRating - средняя оценка темы (1-5).
	AvgRating float64
}

// LectureDigest - агрегат отзывов одной завершённой лекции.
type LectureDigest struct {
	// LectureID - лекция.
	LectureID string

	// Title - тема лекции.
	Title string

	// Date - дата проведения.
	Date time.Time

	// FeedbackCount - количество отзывов.
	FeedbackCount int

	// AvgUnderstanding - средний балл понимания (0.0-1.0).
	AvgUnderstanding float64

	// FullyCount, PartialCount, NeedClarityCount - распределение
	// уровней понимания.
	FullyCount       int
	PartialCount     int
	NeedClarityCount int

	// Topics - сигналы по темам лекции.
	Topics []TopicSignal

	// Comments - свободные комментарии студентов (без авторства).
	Comments []string
}

// CourseDigest - агрегат отзывов курса, вход анализатора.
type CourseDigest struct {
	// CourseID - курс.
	CourseID string

	// CourseName - название курса.
	CourseName string

	// EnrolledCount - студентов на курсе.
	EnrolledCount int

	// Lectures - дайджесты завершённых лекций по возрастанию даты.
	Lectures []LectureDigest
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORT - выход анализатора
// ══════════════════════════════════════════════════════════════════════════════

// Sentiment - общий тон отзывов курса.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// TopicInsight - вывод анализатора по одной теме.
type TopicInsight struct {
	// Topic - название темы.
	Topic string

	// DifficultyShare - доля отзывов, отметивших тему сложной (0.0-1.0).
	DifficultyShare float64

	// Note - пояснение анализатора.
	Note string
}

// RevisionItem - пункт плана повторения.
type RevisionItem struct {
	// Topic - тема для повторения.
	Topic string

	// SuggestedDate - рекомендуемый день.
	SuggestedDate time.Time

	// Reason - почему тема попала в план.
	Reason string
}

// Report - отчёт анализатора по курсу.
type Report struct {
	// Summary - краткое резюме по курсу.
	Summary string

	// Sentiment - общий тон отзывов.
	Sentiment Sentiment

	// AvgUnderstanding - средний балл понимания по курсу (0.0-1.0).
	AvgUnderstanding float64

	// DifficultTopics - темы в порядке убывания сложности.
	DifficultTopics []TopicInsight

	// RevisionPlan - рекомендуемый план повторения.
	RevisionPlan []RevisionItem

	// Source - происхождение отчёта: "remote" или "local".
	// Локальный фолбэк - полноценный результат, а не деградация,
	// поэтому источник лишь информирует, но не сигнализирует об ошибке.
	Source string

	// GeneratedAt - время генерации.
	GeneratedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// ANALYZER INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Analyzer - контракт аналитического помощника. Реализации обязаны
// возвращать отчёт всегда, когда дайджест корректен: сбой внешнего
// сервиса поглощается локальным фолбэком и не доходит до вызывающего.
type Analyzer interface {
	// Analyze строит отчёт по дайджесту курса.
	Analyze(ctx context.Context, digest CourseDigest) (*Report, error)
}
