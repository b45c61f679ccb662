package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LECTURE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// LectureRepository implements lecture.Repository over maps with a
// courseID → lectureIDs secondary index.
type LectureRepository struct {
	mu       sync.RWMutex
	byID     map[string]*lecture.Lecture
	byCourse map[string][]string
}

var _ lecture.Repository = (*LectureRepository)(nil)

// NewLectureRepository creates an empty lecture repository.
func NewLectureRepository() *LectureRepository {
	return &LectureRepository{
		byID:     make(map[string]*lecture.Lecture),
		byCourse: make(map[string][]string),
	}
}

// Create creates a new lecture.
func (r *LectureRepository) Create(ctx context.Context, l *lecture.Lecture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[l.ID]; exists {
		return shared.NewDomainError("lecture", "Create", shared.ErrValidation,
			"lecture id already in use")
	}

	r.byID[l.ID] = l.Clone()
	r.byCourse[l.CourseID] = append(r.byCourse[l.CourseID], l.ID)
	return nil
}

// GetByID returns a lecture by internal ID.
func (r *LectureRepository) GetByID(ctx context.Context, id string) (*lecture.Lecture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, lecture.ErrLectureNotFound
	}
	return l.Clone(), nil
}

// Update persists a lecture status change.
func (r *LectureRepository) Update(ctx context.Context, l *lecture.Lecture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[l.ID]; !ok {
		return lecture.ErrLectureNotFound
	}
	r.byID[l.ID] = l.Clone()
	return nil
}

// GetByCourse returns the course's lectures sorted by date ascending.
func (r *LectureRepository) GetByCourse(ctx context.Context, courseID string) ([]*lecture.Lecture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect([]string{courseID}, nil), nil
}

// GetByCourses returns lectures of all given courses sorted by date ascending.
func (r *LectureRepository) GetByCourses(ctx context.Context, courseIDs []string) ([]*lecture.Lecture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(courseIDs, nil), nil
}

// GetCompletedByCourse returns the course's completed lectures sorted by
// date ascending.
func (r *LectureRepository) GetCompletedByCourse(ctx context.Context, courseID string) ([]*lecture.Lecture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	completed := func(l *lecture.Lecture) bool { return l.IsCompleted() }
	return r.collect([]string{courseID}, completed), nil
}

// CountByCourse returns the number of lectures in the course.
func (r *LectureRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCourse[courseID]), nil
}

// collect gathers lectures of the given courses, optionally filtered,
// cloned and sorted by date ascending. Callers must hold the lock.
func (r *LectureRepository) collect(courseIDs []string, filter func(*lecture.Lecture) bool) []*lecture.Lecture {
	result := make([]*lecture.Lecture, 0)
	for _, courseID := range courseIDs {
		for _, id := range r.byCourse[courseID] {
			l := r.byID[id]
			if filter != nil && !filter(l) {
				continue
			}
			result = append(result, l.Clone())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}
