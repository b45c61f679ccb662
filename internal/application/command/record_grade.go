package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD GRADE COMMAND
// Upsert semantics: the first call for a (assessment, student) pair creates
// a draft grade, subsequent calls overwrite the marks. Re-grading a
// published grade demotes it back to draft until the next publish.
// ══════════════════════════════════════════════════════════════════════════════

// RecordGradeCommand contains the data to record a student's marks.
type RecordGradeCommand struct {
	// AssessmentID is the assessment being graded.
	AssessmentID string

	// StudentID is the graded student.
	StudentID string

	// Marks is the obtained marks, or nil to register the student
	// as pending (not yet graded).
	Marks *float64
}

// Validate validates the command.
func (c RecordGradeCommand) Validate() error {
	if c.AssessmentID == "" {
		return errors.New("record_grade: assessment_id is required")
	}
	if c.StudentID == "" {
		return errors.New("record_grade: student_id is required")
	}
	return nil
}

// RecordGradeResult contains the result of recording a grade.
type RecordGradeResult struct {
	// Grade is the grade after the write, always in status draft.
	Grade *gradebook.Grade

	// Demoted is true when an already published grade was reset to draft.
	Demoted bool
}

// RecordGradeHandler handles the RecordGradeCommand.
type RecordGradeHandler struct {
	gradeRepo      gradebook.GradeRepository
	assessmentRepo gradebook.AssessmentRepository
	studentRepo    identity.StudentRepository
	eventPublisher shared.EventPublisher
}

// NewRecordGradeHandler creates a new RecordGradeHandler.
func NewRecordGradeHandler(
	gradeRepo gradebook.GradeRepository,
	assessmentRepo gradebook.AssessmentRepository,
	studentRepo identity.StudentRepository,
	eventPublisher shared.EventPublisher,
) *RecordGradeHandler {
	return &RecordGradeHandler{
		gradeRepo:      gradeRepo,
		assessmentRepo: assessmentRepo,
		studentRepo:    studentRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the command.
func (h *RecordGradeHandler) Handle(ctx context.Context, cmd RecordGradeCommand) (*RecordGradeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("gradebook", "RecordGrade", shared.ErrValidation, err.Error(), err)
	}

	assessment, err := h.assessmentRepo.GetByID(ctx, cmd.AssessmentID)
	if err != nil {
		return nil, shared.WrapError("gradebook", "RecordGrade", shared.ErrNotFound, "assessment not found", err)
	}

	student, err := h.studentRepo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return nil, shared.WrapError("gradebook", "RecordGrade", shared.ErrNotFound, "student not found", err)
	}
	if !student.IsEnrolledIn(assessment.CourseID) {
		return nil, shared.NewDomainError("gradebook", "RecordGrade", shared.ErrValidation,
			"student is not enrolled in the assessment's course")
	}

	existing, err := h.gradeRepo.GetByAssessmentAndStudent(ctx, cmd.AssessmentID, cmd.StudentID)
	switch {
	case err == nil:
		demoted := existing.IsPublished()
		if err := existing.SetMarks(cmd.Marks, assessment.MaxMarks); err != nil {
			return nil, shared.WrapError("gradebook", "RecordGrade", shared.ErrValidation, err.Error(), err)
		}
		if err := h.gradeRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		h.publishRecorded(ctx, existing, demoted)
		return &RecordGradeResult{Grade: existing, Demoted: demoted}, nil

	case errors.Is(err, gradebook.ErrGradeNotFound) || shared.IsNotFound(err):
		grade, err := gradebook.NewGrade(uuid.NewString(), cmd.AssessmentID, cmd.StudentID, cmd.Marks, assessment.MaxMarks)
		if err != nil {
			return nil, shared.WrapError("gradebook", "RecordGrade", shared.ErrValidation, err.Error(), err)
		}
		if err := h.gradeRepo.Create(ctx, grade); err != nil {
			return nil, err
		}
		h.publishRecorded(ctx, grade, false)
		return &RecordGradeResult{Grade: grade, Demoted: false}, nil

	default:
		return nil, err
	}
}

func (h *RecordGradeHandler) publishRecorded(ctx context.Context, grade *gradebook.Grade, demoted bool) {
	publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(shared.EventGradeRecorded, grade.ID,
		map[string]interface{}{
			"assessment_id": grade.AssessmentID,
			"student_id":    grade.StudentID,
			"graded":        grade.IsGraded(),
			"demoted":       demoted,
		}))
}
