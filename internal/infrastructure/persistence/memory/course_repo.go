package memory

import (
	"context"
	"sync"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// CourseRepository implements course.Repository over maps.
// byCode enforces global enrollment-code uniqueness; byProfessor is a
// secondary index for professor dashboards.
type CourseRepository struct {
	mu          sync.RWMutex
	byID        map[string]*course.Course
	byCode      map[shared.EnrollmentCode]string
	byProfessor map[string][]string
	order       []string
}

var _ course.Repository = (*CourseRepository)(nil)

// NewCourseRepository creates an empty course repository.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{
		byID:        make(map[string]*course.Course),
		byCode:      make(map[shared.EnrollmentCode]string),
		byProfessor: make(map[string][]string),
	}
}

// Create creates a new course.
func (r *CourseRepository) Create(ctx context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return shared.NewDomainError("course", "Create", shared.ErrValidation,
			"course id already in use")
	}
	if _, exists := r.byCode[c.EnrollmentCode]; exists {
		return shared.NewDomainError("course", "Create", shared.ErrValidation,
			"enrollment code already assigned")
	}

	r.byID[c.ID] = c.Clone()
	r.byCode[c.EnrollmentCode] = c.ID
	r.byProfessor[c.ProfessorID] = append(r.byProfessor[c.ProfessorID], c.ID)
	r.order = append(r.order, c.ID)
	return nil
}

// GetByID returns a course by internal ID.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, course.ErrCourseNotFound
	}
	return c.Clone(), nil
}

// GetByEnrollmentCode returns the course owning the enrollment code.
func (r *CourseRepository) GetByEnrollmentCode(ctx context.Context, code shared.EnrollmentCode) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return nil, course.ErrCourseNotFound
	}
	return r.byID[id].Clone(), nil
}

// ExistsByEnrollmentCode checks whether the code is already assigned.
func (r *CourseRepository) ExistsByEnrollmentCode(ctx context.Context, code shared.EnrollmentCode) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byCode[code]
	return ok, nil
}

// GetByIDs returns courses preserving the order of the given IDs.
// This is what keeps a student's course list in enrollment order.
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) ([]*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*course.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			result = append(result, c.Clone())
		}
	}
	return result, nil
}

// GetByProfessor returns the professor's courses in creation order.
func (r *CourseRepository) GetByProfessor(ctx context.Context, professorID string) ([]*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byProfessor[professorID]
	result := make([]*course.Course, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.byID[id].Clone())
	}
	return result, nil
}

// GetAll returns all courses in creation order.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*course.Course, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id].Clone())
	}
	return result, nil
}

// Count returns the number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
