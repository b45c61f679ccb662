package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT ROSTER COMMAND
// Bulk-enrolls a list of students into a course in two phases: first every
// row is validated, and only a fully clean batch proceeds to commit. The
// commit itself is row-by-row and non-transactional: rows already applied
// stay applied if a later row fails unexpectedly.
// ══════════════════════════════════════════════════════════════════════════════

// RosterRow is one student line of a roster import.
type RosterRow struct {
	Name       string `validate:"required,min=1,max=100"`
	Email      string `validate:"required,email"`
	RollNumber string `validate:"required,min=2,max=30,excludesall= \t\n\r"`
	Department string `validate:"required,min=2,max=100"`
}

// RosterError describes why a single roster row was rejected.
type RosterError struct {
	// Row is the 1-based row index in the submitted roster.
	Row int

	// Field is the offending field, empty for row-level problems.
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e RosterError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("row %d, field %s: %s", e.Row, e.Field, e.Message)
}

// ImportRosterCommand contains the data to import a course roster.
type ImportRosterCommand struct {
	// CourseID is the target course.
	CourseID string

	// Rows is the submitted roster, one entry per student.
	Rows []RosterRow
}

// Validate validates the command shape. Row contents are checked
// during the validation phase of Handle.
func (c ImportRosterCommand) Validate() error {
	if c.CourseID == "" {
		return errors.New("import_roster: course_id is required")
	}
	if len(c.Rows) == 0 {
		return errors.New("import_roster: roster is empty")
	}
	return nil
}

// ImportRosterResult contains the outcome of a roster import.
type ImportRosterResult struct {
	// CreatedCount is the number of brand-new student accounts.
	CreatedCount int

	// EnrolledCount is the number of students enrolled into the course,
	// including newly created ones.
	EnrolledCount int

	// AlreadyEnrolledCount is the number of rows whose student was
	// already enrolled; those rows are skipped, not errors.
	AlreadyEnrolledCount int

	// RowErrors lists per-row validation failures. Non-empty RowErrors
	// means the batch was rejected and nothing was committed.
	RowErrors []RosterError
}

// Rejected reports whether the batch failed validation.
func (r *ImportRosterResult) Rejected() bool {
	return len(r.RowErrors) > 0
}

// ImportRosterHandler handles the ImportRosterCommand.
type ImportRosterHandler struct {
	studentRepo    identity.StudentRepository
	courseRepo     course.Repository
	eventPublisher shared.EventPublisher
	validate       *validator.Validate
	logger         *logger.Logger
}

// NewImportRosterHandler creates a new ImportRosterHandler.
func NewImportRosterHandler(
	studentRepo identity.StudentRepository,
	courseRepo course.Repository,
	eventPublisher shared.EventPublisher,
	log *logger.Logger,
) *ImportRosterHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ImportRosterHandler{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		eventPublisher: eventPublisher,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         log,
	}
}

// Handle executes the command.
func (h *ImportRosterHandler) Handle(ctx context.Context, cmd ImportRosterCommand) (*ImportRosterResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("catalog", "ImportRoster", shared.ErrValidation, err.Error(), err)
	}

	crs, err := h.courseRepo.GetByID(ctx, cmd.CourseID)
	if err != nil {
		return nil, shared.WrapError("catalog", "ImportRoster", shared.ErrNotFound, "course not found", err)
	}

	// Phase 1: validate the whole batch. Any single bad row rejects
	// the import without touching the store.
	rowErrors := h.validateRows(cmd.Rows)
	if len(rowErrors) > 0 {
		h.logger.Warn("roster import rejected",
			logger.CourseID(crs.ID),
			logger.Int("row_count", len(cmd.Rows)),
			logger.Int("error_count", len(rowErrors)),
		)
		return &ImportRosterResult{RowErrors: rowErrors}, nil
	}

	// Phase 2: commit row by row.
	result := &ImportRosterResult{}
	for i, row := range cmd.Rows {
		if err := h.commitRow(ctx, crs, row, result); err != nil {
			return nil, shared.WrapError("catalog", "ImportRoster", shared.ErrValidation,
				fmt.Sprintf("commit failed at row %d after %d rows applied", i+1, result.EnrolledCount), err)
		}
	}

	h.logger.Info("roster imported",
		logger.CourseID(crs.ID),
		logger.Int("created", result.CreatedCount),
		logger.Int("enrolled", result.EnrolledCount),
		logger.Int("already_enrolled", result.AlreadyEnrolledCount),
	)

	publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(shared.EventRosterImported, crs.ID,
		map[string]interface{}{
			"course_id":        crs.ID,
			"created":          result.CreatedCount,
			"enrolled":         result.EnrolledCount,
			"already_enrolled": result.AlreadyEnrolledCount,
		}))

	return result, nil
}

// validateRows runs struct validation on every row and checks for
// duplicate emails inside the batch itself.
func (h *ImportRosterHandler) validateRows(rows []RosterRow) []RosterError {
	var rowErrors []RosterError
	seen := make(map[shared.Email]int, len(rows))

	for i, row := range rows {
		rowNum := i + 1

		if err := h.validate.Struct(row); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					rowErrors = append(rowErrors, RosterError{
						Row:     rowNum,
						Field:   fe.Field(),
						Message: fmt.Sprintf("failed %q validation", fe.Tag()),
					})
				}
			} else {
				rowErrors = append(rowErrors, RosterError{Row: rowNum, Message: err.Error()})
			}
			continue
		}

		email := shared.Email(shared.NormalizeEmail(row.Email))
		if first, dup := seen[email]; dup {
			rowErrors = append(rowErrors, RosterError{
				Row:     rowNum,
				Field:   "Email",
				Message: fmt.Sprintf("duplicates row %d", first),
			})
			continue
		}
		seen[email] = rowNum
	}

	return rowErrors
}

// commitRow applies a single validated row: reuses an existing student
// account when the email is known, creates one otherwise, then enrolls.
func (h *ImportRosterHandler) commitRow(ctx context.Context, crs *course.Course, row RosterRow, result *ImportRosterResult) error {
	email := shared.Email(shared.NormalizeEmail(row.Email))

	student, err := h.studentRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing account, enroll only.

	case errors.Is(err, identity.ErrStudentNotFound) || shared.IsNotFound(err):
		student, err = identity.NewStudent(identity.NewStudentParams{
			ID:         uuid.NewString(),
			Name:       row.Name,
			Email:      row.Email,
			RollNumber: row.RollNumber,
			Department: row.Department,
		})
		if err != nil {
			return err
		}
		if err := h.studentRepo.Create(ctx, student); err != nil {
			return err
		}
		result.CreatedCount++
		publishEvent(ctx, h.eventPublisher, shared.NewGenericEvent(shared.EventStudentRegistered, student.ID,
			map[string]interface{}{
				"email":      student.Email.String(),
				"via_import": true,
			}))

	default:
		return err
	}

	if err := student.EnrollIn(crs.ID); err != nil {
		if errors.Is(err, shared.ErrAlreadyEnrolled) {
			result.AlreadyEnrolledCount++
			return nil
		}
		return err
	}
	if err := h.studentRepo.Update(ctx, student); err != nil {
		return err
	}
	result.EnrolledCount++
	publishEvent(ctx, h.eventPublisher, shared.NewStudentEnrolledEvent(student.ID, crs.ID, true))
	return nil
}
