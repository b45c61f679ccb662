// Package gradebook содержит доменную модель оценивания: контрольные
// мероприятия, оценки с жизненным циклом draft → published, буквенные
// оценки и взвешенный текущий балл курса.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package gradebook

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// AssessmentType определяет тип контрольного мероприятия.
type AssessmentType string

const (
	// TypeQuiz - короткий опрос.
	TypeQuiz AssessmentType = "quiz"
	// TypeAssignment - домашнее задание.
	TypeAssignment AssessmentType = "assignment"
	// TypeMidterm - промежуточный экзамен.
	TypeMidterm AssessmentType = "midterm"
	// TypeFinal - итоговый экзамен.
	TypeFinal AssessmentType = "final"
	// TypeProject - проект.
	TypeProject AssessmentType = "project"
)

// IsValid проверяет, что тип корректен.
func (t AssessmentType) IsValid() bool {
	switch t {
	case TypeQuiz, TypeAssignment, TypeMidterm, TypeFinal, TypeProject:
		return true
	default:
		return false
	}
}

// GradeStatus определяет видимость оценки: явное тегированное состояние
// вместо вывода видимости из булевого флага. Переход только
// Draft → Published, обратного пути нет.
type GradeStatus string

const (
	// StatusDraft - черновик, студенту не виден.
	StatusDraft GradeStatus = "draft"
	// StatusPublished - опубликована, видна студенту.
	StatusPublished GradeStatus = "published"
)

// IsValid проверяет, что статус корректен.
func (s GradeStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidAssessmentName - невалидное название мероприятия.
	ErrInvalidAssessmentName = errors.New("invalid assessment name: must be 1-150 chars")

	// ErrInvalidAssessmentType - невалидный тип мероприятия.
	ErrInvalidAssessmentType = errors.New("invalid assessment type")

	// ErrInvalidMaxMarks - невалидный максимум баллов.
	ErrInvalidMaxMarks = errors.New("invalid max marks: must be positive")

	// ErrInvalidWeight - невалидный вес мероприятия.
	ErrInvalidWeight = errors.New("invalid weight: must be in (0, 100]")

	// ErrInvalidMarks - баллы вне диапазона [0, maxMarks].
	ErrInvalidMarks = errors.New("invalid marks: must be in [0, max marks]")

	// ErrAssessmentNotFound - мероприятие не найдено.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrGradeNotFound - оценка не найдена.
	ErrGradeNotFound = errors.New("grade not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY: ASSESSMENT
// ══════════════════════════════════════════════════════════════════════════════

// Assessment - контрольное мероприятие курса. Сумма весов мероприятий
// курса не должна превышать 100 - это мягкий инвариант, проверяемый
// при публикации оценок (не при создании).
type Assessment struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// CourseID - курс, которому принадлежит мероприятие.
	CourseID string

	// Name - название мероприятия.
	Name string

	// Type - тип мероприятия.
	Type AssessmentType

	// MaxMarks - максимум баллов.
	MaxMarks float64

	// WeightPct - вес мероприятия в текущем балле курса (0-100].
	WeightPct float64

	// DueDate - срок сдачи (необязателен).
	DueDate *time.Time

	// CreatedAt - время создания.
	CreatedAt time.Time
}

// NewAssessmentParams содержит параметры для создания мероприятия.
type NewAssessmentParams struct {
	ID        string
	CourseID  string
	Name      string
	Type      AssessmentType
	MaxMarks  float64
	WeightPct float64
	DueDate   *time.Time
}

// NewAssessment создаёт новое мероприятие с валидацией всех полей.
func NewAssessment(params NewAssessmentParams) (*Assessment, error) {
	if params.ID == "" {
		return nil, errors.New("assessment id is required")
	}
	if params.CourseID == "" {
		return nil, errors.New("course id is required")
	}

	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 150 {
		return nil, ErrInvalidAssessmentName
	}

	if !params.Type.IsValid() {
		return nil, ErrInvalidAssessmentType
	}

	if params.MaxMarks <= 0 {
		return nil, ErrInvalidMaxMarks
	}

	if params.WeightPct <= 0 || !shared.Percent(params.WeightPct).IsValid() {
		return nil, ErrInvalidWeight
	}

	return &Assessment{
		ID:        params.ID,
		CourseID:  params.CourseID,
		Name:      name,
		Type:      params.Type,
		MaxMarks:  params.MaxMarks,
		WeightPct: params.WeightPct,
		DueDate:   params.DueDate,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// String возвращает строковое представление для логирования.
func (a *Assessment) String() string {
	return fmt.Sprintf(
		"Assessment{ID: %s, Course: %s, Name: %s, Weight: %.1f}",
		a.ID, a.CourseID, a.Name, a.WeightPct,
	)
}

// Clone создаёт глубокую копию мероприятия.
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	clone := *a
	if a.DueDate != nil {
		due := *a.DueDate
		clone.DueDate = &due
	}
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY: GRADE
// ══════════════════════════════════════════════════════════════════════════════

// Grade - оценка студента за мероприятие. MarksObtained может быть nil
// (ещё не оценено) даже у опубликованной оценки - студент видит "pending".
type Grade struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// AssessmentID - мероприятие.
	AssessmentID string

	// StudentID - студент.
	StudentID string

	// MarksObtained - набранные баллы или nil, если ещё не оценено.
	MarksObtained *float64

	// Status - черновик или опубликована.
	Status GradeStatus

	// GradedAt - время последнего выставления баллов.
	GradedAt time.Time
}

// NewGrade создаёт оценку в состоянии draft.
func NewGrade(id, assessmentID, studentID string, marks *float64, maxMarks float64) (*Grade, error) {
	if id == "" {
		return nil, errors.New("grade id is required")
	}
	if assessmentID == "" {
		return nil, errors.New("assessment id is required")
	}
	if studentID == "" {
		return nil, errors.New("student id is required")
	}
	if marks != nil && (*marks < 0 || *marks > maxMarks) {
		return nil, ErrInvalidMarks
	}

	return &Grade{
		ID:            id,
		AssessmentID:  assessmentID,
		StudentID:     studentID,
		MarksObtained: marks,
		Status:        StatusDraft,
		GradedAt:      time.Now().UTC(),
	}, nil
}

// SetMarks обновляет баллы. Если оценка была опубликована, она
// возвращается в draft: изменение не должно молча утечь студенту,
// требуется повторная публикация.
func (g *Grade) SetMarks(marks *float64, maxMarks float64) error {
	if marks != nil && (*marks < 0 || *marks > maxMarks) {
		return ErrInvalidMarks
	}
	g.MarksObtained = marks
	g.Status = StatusDraft
	g.GradedAt = time.Now().UTC()
	return nil
}

// Publish делает оценку видимой студенту. Публикация необратима;
// повторная публикация уже опубликованной оценки - no-op.
func (g *Grade) Publish() {
	g.Status = StatusPublished
}

// IsPublished проверяет видимость оценки студенту.
func (g *Grade) IsPublished() bool {
	return g.Status == StatusPublished
}

// IsGraded проверяет, выставлены ли баллы.
func (g *Grade) IsGraded() bool {
	return g.MarksObtained != nil
}

// String возвращает строковое представление для логирования.
func (g *Grade) String() string {
	marks := "pending"
	if g.MarksObtained != nil {
		marks = fmt.Sprintf("%.1f", *g.MarksObtained)
	}
	return fmt.Sprintf(
		"Grade{ID: %s, Assessment: %s, Student: %s, Marks: %s, Status: %s}",
		g.ID, g.AssessmentID, g.StudentID, marks, g.Status,
	)
}

// Clone создаёт глубокую копию оценки.
func (g *Grade) Clone() *Grade {
	if g == nil {
		return nil
	}
	clone := *g
	if g.MarksObtained != nil {
		marks := *g.MarksObtained
		clone.MarksObtained = &marks
	}
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// LETTER GRADES & GPA SCALE
// ══════════════════════════════════════════════════════════════════════════════

// LetterGrade - буквенная оценка по фиксированной шкале процентов.
type LetterGrade string

const (
	LetterA      LetterGrade = "A"
	LetterAMinus LetterGrade = "A-"
	LetterBPlus  LetterGrade = "B+"
	LetterB      LetterGrade = "B"
	LetterBMinus LetterGrade = "B-"
	LetterCPlus  LetterGrade = "C+"
	LetterC      LetterGrade = "C"
	LetterCMinus LetterGrade = "C-"
	LetterDPlus  LetterGrade = "D+"
	LetterD      LetterGrade = "D"
	LetterF      LetterGrade = "F"
)

// letterThresholds - пороги процентов в порядке убывания.
var letterThresholds = []struct {
	min    float64
	letter LetterGrade
}{
	{93, LetterA},
	{90, LetterAMinus},
	{87, LetterBPlus},
	{83, LetterB},
	{80, LetterBMinus},
	{77, LetterCPlus},
	{73, LetterC},
	{70, LetterCMinus},
	{67, LetterDPlus},
	{60, LetterD},
}

// LetterFromPercent отображает процент в буквенную оценку.
func LetterFromPercent(pct float64) LetterGrade {
	for _, t := range letterThresholds {
		if pct >= t.min {
			return t.letter
		}
	}
	return LetterF
}

// gradePoints - значения 4.0-шкалы для буквенных оценок.
var gradePoints = map[LetterGrade]float64{
	LetterA:      4.0,
	LetterAMinus: 3.7,
	LetterBPlus:  3.3,
	LetterB:      3.0,
	LetterBMinus: 2.7,
	LetterCPlus:  2.3,
	LetterC:      2.0,
	LetterCMinus: 1.7,
	LetterDPlus:  1.3,
	LetterD:      1.0,
	LetterF:      0.0,
}

// GradePoint возвращает значение буквенной оценки по 4.0-шкале.
func (l LetterGrade) GradePoint() float64 {
	return gradePoints[l]
}

// ══════════════════════════════════════════════════════════════════════════════
// WEIGHTED COURSE GRADE
// ══════════════════════════════════════════════════════════════════════════════

// ComputeCurrentGrade вычисляет взвешенный текущий балл курса.
//
// Учитываются только опубликованные оценки с выставленными баллами:
// pct = marks / maxMarks * 100, итог = Σ(pct · weight) / Σ(weight).
// Неоцененные и неопубликованные мероприятия исключаются и из числителя,
// и из знаменателя - частичное оценивание не занижает балл студента
// артефактом знаменателя. Если оцененных мероприятий нет, возвращается nil.
func ComputeCurrentGrade(assessments []*Assessment, grades []*Grade) *float64 {
	byAssessment := make(map[string]*Assessment, len(assessments))
	for _, a := range assessments {
		byAssessment[a.ID] = a
	}

	var weightedSum, weightTotal float64
	for _, g := range grades {
		if !g.IsPublished() || !g.IsGraded() {
			continue
		}
		a, ok := byAssessment[g.AssessmentID]
		if !ok || a.MaxMarks <= 0 {
			continue
		}
		pct := *g.MarksObtained / a.MaxMarks * 100
		weightedSum += pct * a.WeightPct
		weightTotal += a.WeightPct
	}

	if weightTotal == 0 {
		return nil
	}
	grade := weightedSum / weightTotal
	return &grade
}

// SumWeights возвращает сумму весов мероприятий - для мягкой проверки
// "Σ weightPct ≤ 100" при публикации.
func SumWeights(assessments []*Assessment) float64 {
	var sum float64
	for _, a := range assessments {
		sum += a.WeightPct
	}
	return sum
}
