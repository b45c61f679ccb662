package memory

import (
	"context"
	"sync"

	"github.com/classpulse/classpulse-core/internal/domain/feedback"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FEEDBACK REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// pairKey identifies the (student, lecture) pair that owns at most one
// feedback record.
type pairKey struct {
	studentID string
	lectureID string
}

// FeedbackRepository implements feedback.Repository over maps.
// byPair enforces the one-feedback-per-(student, lecture) invariant;
// byLecture and byStudent are secondary indexes for derivations.
type FeedbackRepository struct {
	mu        sync.RWMutex
	byID      map[string]*feedback.Feedback
	byPair    map[pairKey]string
	byLecture map[string][]string
	byStudent map[string][]string
}

var _ feedback.Repository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates an empty feedback repository.
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{
		byID:      make(map[string]*feedback.Feedback),
		byPair:    make(map[pairKey]string),
		byLecture: make(map[string][]string),
		byStudent: make(map[string][]string),
	}
}

// Create creates a new feedback record.
func (r *FeedbackRepository) Create(ctx context.Context, fb *feedback.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{studentID: fb.StudentID, lectureID: fb.LectureID}
	if _, exists := r.byPair[key]; exists {
		return shared.NewDomainError("feedback", "Create", shared.ErrDuplicateFeedback,
			"feedback already submitted for this lecture")
	}
	if _, exists := r.byID[fb.ID]; exists {
		return shared.NewDomainError("feedback", "Create", shared.ErrValidation,
			"feedback id already in use")
	}

	r.byID[fb.ID] = fb.Clone()
	r.byPair[key] = fb.ID
	r.byLecture[fb.LectureID] = append(r.byLecture[fb.LectureID], fb.ID)
	r.byStudent[fb.StudentID] = append(r.byStudent[fb.StudentID], fb.ID)
	return nil
}

// GetByID returns a feedback record by internal ID.
func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*feedback.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fb, ok := r.byID[id]
	if !ok {
		return nil, feedback.ErrFeedbackNotFound
	}
	return fb.Clone(), nil
}

// GetByStudentAndLecture returns the feedback of the (student, lecture) pair.
func (r *FeedbackRepository) GetByStudentAndLecture(ctx context.Context, studentID, lectureID string) (*feedback.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[pairKey{studentID: studentID, lectureID: lectureID}]
	if !ok {
		return nil, feedback.ErrFeedbackNotFound
	}
	return r.byID[id].Clone(), nil
}

// ExistsByStudentAndLecture checks whether the pair already has feedback.
func (r *FeedbackRepository) ExistsByStudentAndLecture(ctx context.Context, studentID, lectureID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byPair[pairKey{studentID: studentID, lectureID: lectureID}]
	return ok, nil
}

// GetByLecture returns all feedback for a lecture.
func (r *FeedbackRepository) GetByLecture(ctx context.Context, lectureID string) ([]*feedback.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.byLecture[lectureID]), nil
}

// GetByLectures returns all feedback for the given lectures.
func (r *FeedbackRepository) GetByLectures(ctx context.Context, lectureIDs []string) ([]*feedback.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for _, lectureID := range lectureIDs {
		ids = append(ids, r.byLecture[lectureID]...)
	}
	return r.collect(ids), nil
}

// GetByStudent returns all feedback submitted by a student.
func (r *FeedbackRepository) GetByStudent(ctx context.Context, studentID string) ([]*feedback.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.byStudent[studentID]), nil
}

// CountByStudentInLectures returns how many of the given lectures the
// student has already given feedback on.
func (r *FeedbackRepository) CountByStudentInLectures(ctx context.Context, studentID string, lectureIDs []string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, lectureID := range lectureIDs {
		if _, ok := r.byPair[pairKey{studentID: studentID, lectureID: lectureID}]; ok {
			count++
		}
	}
	return count, nil
}

// collect clones records by ID, skipping unknown IDs. Callers must hold
// the lock.
func (r *FeedbackRepository) collect(ids []string) []*feedback.Feedback {
	result := make([]*feedback.Feedback, 0, len(ids))
	for _, id := range ids {
		if fb, ok := r.byID[id]; ok {
			result = append(result, fb.Clone())
		}
	}
	return result
}
