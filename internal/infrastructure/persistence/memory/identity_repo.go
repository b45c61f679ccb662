package memory

import (
	"context"
	"sync"

	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFESSOR REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ProfessorRepository implements identity.ProfessorRepository over maps.
// byEmail is the uniqueness index: one canonical (normalized) email maps to
// at most one professor ID.
type ProfessorRepository struct {
	mu      sync.RWMutex
	byID    map[string]*identity.Professor
	byEmail map[shared.Email]string
	order   []string // insertion order for GetAll
}

var _ identity.ProfessorRepository = (*ProfessorRepository)(nil)

// NewProfessorRepository creates an empty professor repository.
func NewProfessorRepository() *ProfessorRepository {
	return &ProfessorRepository{
		byID:    make(map[string]*identity.Professor),
		byEmail: make(map[shared.Email]string),
	}
}

// Create creates a new professor.
func (r *ProfessorRepository) Create(ctx context.Context, p *identity.Professor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[p.Email]; exists {
		return shared.NewDomainError("identity", "Create", shared.ErrDuplicateEmail,
			"professor email already registered")
	}
	if _, exists := r.byID[p.ID]; exists {
		return shared.NewDomainError("identity", "Create", shared.ErrValidation,
			"professor id already in use")
	}

	r.byID[p.ID] = p.Clone()
	r.byEmail[p.Email] = p.ID
	r.order = append(r.order, p.ID)
	return nil
}

// GetByID returns a professor by internal ID.
func (r *ProfessorRepository) GetByID(ctx context.Context, id string) (*identity.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, identity.ErrProfessorNotFound
	}
	return p.Clone(), nil
}

// GetByEmail returns a professor by normalized email.
func (r *ProfessorRepository) GetByEmail(ctx context.Context, email shared.Email) (*identity.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, identity.ErrProfessorNotFound
	}
	return r.byID[id].Clone(), nil
}

// ExistsByEmail checks email uniqueness among professors.
func (r *ProfessorRepository) ExistsByEmail(ctx context.Context, email shared.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

// GetAll returns all professors in registration order.
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*identity.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*identity.Professor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id].Clone())
	}
	return result, nil
}

// Count returns the number of professors.
func (r *ProfessorRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements identity.StudentRepository over maps.
// byCourse is a secondary index (courseID → studentIDs in registration
// order) kept in sync on Create/Update so enrolled-student lookups do not
// scan the whole student set.
type StudentRepository struct {
	mu       sync.RWMutex
	byID     map[string]*identity.Student
	byEmail  map[shared.Email]string
	byCourse map[string][]string
	order    []string
}

var _ identity.StudentRepository = (*StudentRepository)(nil)

// NewStudentRepository creates an empty student repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		byID:     make(map[string]*identity.Student),
		byEmail:  make(map[shared.Email]string),
		byCourse: make(map[string][]string),
	}
}

// Create creates a new student.
func (r *StudentRepository) Create(ctx context.Context, s *identity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[s.Email]; exists {
		return shared.NewDomainError("identity", "Create", shared.ErrDuplicateEmail,
			"student email already registered")
	}
	if _, exists := r.byID[s.ID]; exists {
		return shared.NewDomainError("identity", "Create", shared.ErrValidation,
			"student id already in use")
	}

	r.byID[s.ID] = s.Clone()
	r.byEmail[s.Email] = s.ID
	r.order = append(r.order, s.ID)
	for _, courseID := range s.EnrolledCourseIDs {
		r.byCourse[courseID] = append(r.byCourse[courseID], s.ID)
	}
	return nil
}

// GetByID returns a student by internal ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*identity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, identity.ErrStudentNotFound
	}
	return s.Clone(), nil
}

// GetByEmail returns a student by normalized email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email shared.Email) (*identity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, identity.ErrStudentNotFound
	}
	return r.byID[id].Clone(), nil
}

// ExistsByEmail checks email uniqueness among students.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email shared.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

// Update persists changes to a student's enrollment set and reconciles the
// course index.
func (r *StudentRepository) Update(ctx context.Context, s *identity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[s.ID]
	if !ok {
		return identity.ErrStudentNotFound
	}

	seen := make(map[string]bool, len(current.EnrolledCourseIDs))
	for _, courseID := range current.EnrolledCourseIDs {
		seen[courseID] = true
	}
	for _, courseID := range s.EnrolledCourseIDs {
		if !seen[courseID] {
			r.byCourse[courseID] = append(r.byCourse[courseID], s.ID)
		}
	}

	r.byID[s.ID] = s.Clone()
	return nil
}

// GetByIDs returns students preserving the order of the given IDs.
func (r *StudentRepository) GetByIDs(ctx context.Context, ids []string) ([]*identity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*identity.Student, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			result = append(result, s.Clone())
		}
	}
	return result, nil
}

// GetEnrolledInCourse returns students enrolled in the course.
func (r *StudentRepository) GetEnrolledInCourse(ctx context.Context, courseID string) ([]*identity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byCourse[courseID]
	result := make([]*identity.Student, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			result = append(result, s.Clone())
		}
	}
	return result, nil
}

// GetAll returns all students in registration order.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*identity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*identity.Student, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id].Clone())
	}
	return result, nil
}

// Count returns the number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
