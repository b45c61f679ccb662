package memory

import (
	"context"
	"sync"

	"github.com/classpulse/classpulse-core/internal/domain/gradebook"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSESSMENT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// AssessmentRepository implements gradebook.AssessmentRepository over maps
// with a courseID → assessmentIDs secondary index.
type AssessmentRepository struct {
	mu       sync.RWMutex
	byID     map[string]*gradebook.Assessment
	byCourse map[string][]string
}

var _ gradebook.AssessmentRepository = (*AssessmentRepository)(nil)

// NewAssessmentRepository creates an empty assessment repository.
func NewAssessmentRepository() *AssessmentRepository {
	return &AssessmentRepository{
		byID:     make(map[string]*gradebook.Assessment),
		byCourse: make(map[string][]string),
	}
}

// Create creates a new assessment.
func (r *AssessmentRepository) Create(ctx context.Context, a *gradebook.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; exists {
		return shared.NewDomainError("gradebook", "Create", shared.ErrValidation,
			"assessment id already in use")
	}

	r.byID[a.ID] = a.Clone()
	r.byCourse[a.CourseID] = append(r.byCourse[a.CourseID], a.ID)
	return nil
}

// GetByID returns an assessment by internal ID.
func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*gradebook.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, gradebook.ErrAssessmentNotFound
	}
	return a.Clone(), nil
}

// GetByCourse returns the course's assessments in creation order.
func (r *AssessmentRepository) GetByCourse(ctx context.Context, courseID string) ([]*gradebook.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byCourse[courseID]
	result := make([]*gradebook.Assessment, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.byID[id].Clone())
	}
	return result, nil
}

// GetByIDs returns assessments by IDs, skipping unknown IDs.
func (r *AssessmentRepository) GetByIDs(ctx context.Context, ids []string) ([]*gradebook.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*gradebook.Assessment, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.byID[id]; ok {
			result = append(result, a.Clone())
		}
	}
	return result, nil
}

// CountByCourse returns the number of assessments in the course.
func (r *AssessmentRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCourse[courseID]), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// gradeKey identifies the (assessment, student) pair behind the idempotent
// grade upsert.
type gradeKey struct {
	assessmentID string
	studentID    string
}

// GradeRepository implements gradebook.GradeRepository over maps.
// byPair backs the upsert; byAssessment and byStudent are secondary
// indexes for publish sweeps and student dashboards.
type GradeRepository struct {
	mu           sync.RWMutex
	byID         map[string]*gradebook.Grade
	byPair       map[gradeKey]string
	byAssessment map[string][]string
	byStudent    map[string][]string
}

var _ gradebook.GradeRepository = (*GradeRepository)(nil)

// NewGradeRepository creates an empty grade repository.
func NewGradeRepository() *GradeRepository {
	return &GradeRepository{
		byID:         make(map[string]*gradebook.Grade),
		byPair:       make(map[gradeKey]string),
		byAssessment: make(map[string][]string),
		byStudent:    make(map[string][]string),
	}
}

// Create creates a new grade.
func (r *GradeRepository) Create(ctx context.Context, g *gradebook.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := gradeKey{assessmentID: g.AssessmentID, studentID: g.StudentID}
	if _, exists := r.byPair[key]; exists {
		return shared.NewDomainError("gradebook", "Create", shared.ErrValidation,
			"grade already exists for this assessment and student")
	}
	if _, exists := r.byID[g.ID]; exists {
		return shared.NewDomainError("gradebook", "Create", shared.ErrValidation,
			"grade id already in use")
	}

	r.byID[g.ID] = g.Clone()
	r.byPair[key] = g.ID
	r.byAssessment[g.AssessmentID] = append(r.byAssessment[g.AssessmentID], g.ID)
	r.byStudent[g.StudentID] = append(r.byStudent[g.StudentID], g.ID)
	return nil
}

// Update persists a marks or status change.
func (r *GradeRepository) Update(ctx context.Context, g *gradebook.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[g.ID]; !ok {
		return gradebook.ErrGradeNotFound
	}
	r.byID[g.ID] = g.Clone()
	return nil
}

// GetByID returns a grade by internal ID.
func (r *GradeRepository) GetByID(ctx context.Context, id string) (*gradebook.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return nil, gradebook.ErrGradeNotFound
	}
	return g.Clone(), nil
}

// GetByAssessmentAndStudent returns the grade of the pair.
func (r *GradeRepository) GetByAssessmentAndStudent(ctx context.Context, assessmentID, studentID string) (*gradebook.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[gradeKey{assessmentID: assessmentID, studentID: studentID}]
	if !ok {
		return nil, gradebook.ErrGradeNotFound
	}
	return r.byID[id].Clone(), nil
}

// GetByAssessment returns all grades of an assessment.
func (r *GradeRepository) GetByAssessment(ctx context.Context, assessmentID string) ([]*gradebook.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.byAssessment[assessmentID], nil), nil
}

// GetByStudent returns all grades of a student regardless of status.
func (r *GradeRepository) GetByStudent(ctx context.Context, studentID string) ([]*gradebook.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.byStudent[studentID], nil), nil
}

// GetPublishedByStudent returns only published grades of a student.
func (r *GradeRepository) GetPublishedByStudent(ctx context.Context, studentID string) ([]*gradebook.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	published := func(g *gradebook.Grade) bool { return g.IsPublished() }
	return r.collect(r.byStudent[studentID], published), nil
}

// collect clones grades by ID, optionally filtered. Callers must hold
// the lock.
func (r *GradeRepository) collect(ids []string, filter func(*gradebook.Grade) bool) []*gradebook.Grade {
	result := make([]*gradebook.Grade, 0, len(ids))
	for _, id := range ids {
		g, ok := r.byID[id]
		if !ok {
			continue
		}
		if filter != nil && !filter(g) {
			continue
		}
		result = append(result, g.Clone())
	}
	return result
}
