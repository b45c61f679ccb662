// Package memory implements the in-memory persistence layer for ClassPulse.
// The store is the single source of truth: maps keyed by entity ID plus
// secondary indexes for O(1) relationship lookups. There is no backing
// database engine; every read recomputes over these collections.
package memory

// Store aggregates all repositories over one shared in-memory dataset.
// It is constructed once per process or test scope and passed by reference
// to the application layer - no module-level singletons, so every test can
// start from a fresh store.
type Store struct {
	professors  *ProfessorRepository
	students    *StudentRepository
	courses     *CourseRepository
	lectures    *LectureRepository
	feedback    *FeedbackRepository
	assessments *AssessmentRepository
	grades      *GradeRepository
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		professors:  NewProfessorRepository(),
		students:    NewStudentRepository(),
		courses:     NewCourseRepository(),
		lectures:    NewLectureRepository(),
		feedback:    NewFeedbackRepository(),
		assessments: NewAssessmentRepository(),
		grades:      NewGradeRepository(),
	}
}

// Professors returns the professor repository.
func (s *Store) Professors() *ProfessorRepository { return s.professors }

// Students returns the student repository.
func (s *Store) Students() *StudentRepository { return s.students }

// Courses returns the course repository.
func (s *Store) Courses() *CourseRepository { return s.courses }

// Lectures returns the lecture repository.
func (s *Store) Lectures() *LectureRepository { return s.lectures }

// Feedback returns the feedback repository.
func (s *Store) Feedback() *FeedbackRepository { return s.feedback }

// Assessments returns the assessment repository.
func (s *Store) Assessments() *AssessmentRepository { return s.assessments }

// Grades returns the grade repository.
func (s *Store) Grades() *GradeRepository { return s.grades }
