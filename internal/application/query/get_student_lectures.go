package query

import (
	"context"
	"errors"

	"github.com/classpulse/classpulse-core/internal/domain/course"
	"github.com/classpulse/classpulse-core/internal/domain/identity"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"
	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT LECTURES QUERY
// Возвращает расписание студента: лекции всех его курсов во всех
// статусах по возрастанию даты, с опциональным фильтром по статусу.
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentLecturesQuery содержит параметры запроса расписания студента.
type GetStudentLecturesQuery struct {
	// StudentID - студент, чьё расписание запрашивается.
	StudentID string

	// Status - фильтр по статусу (пустой = все статусы).
	Status lecture.Status
}

// Validate проверяет корректность параметров запроса.
func (q *GetStudentLecturesQuery) Validate() error {
	if q.StudentID == "" {
		return errors.New("student id is required")
	}
	if q.Status != "" && !q.Status.IsValid() {
		return errors.New("unknown lecture status")
	}
	return nil
}

// StudentLectureDTO - лекция в расписании студента.
type StudentLectureDTO struct {
	// Lecture - данные лекции.
	Lecture LectureDTO `json:"lecture"`

	// CourseCode - код курса лекции (для отображения).
	CourseCode string `json:"course_code"`

	// CourseName - название курса лекции.
	CourseName string `json:"course_name"`
}

// GetStudentLecturesResult содержит результат запроса.
type GetStudentLecturesResult struct {
	// Lectures - лекции по возрастанию даты.
	Lectures []StudentLectureDTO `json:"lectures"`

	// CompletedCount - всего завершённых лекций в курсах студента.
	CompletedCount int `json:"completed_count"`
}

// GetStudentLecturesHandler обрабатывает запросы расписания студента.
type GetStudentLecturesHandler struct {
	studentRepo identity.StudentRepository
	courseRepo  course.Repository
	lectureRepo lecture.Repository
}

// NewGetStudentLecturesHandler создаёт новый обработчик.
func NewGetStudentLecturesHandler(
	studentRepo identity.StudentRepository,
	courseRepo course.Repository,
	lectureRepo lecture.Repository,
) *GetStudentLecturesHandler {
	return &GetStudentLecturesHandler{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		lectureRepo: lectureRepo,
	}
}

// Handle выполняет запрос расписания студента.
func (h *GetStudentLecturesHandler) Handle(ctx context.Context, query GetStudentLecturesQuery) (*GetStudentLecturesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetStudentLectures", shared.ErrValidation, err.Error(), err)
	}

	student, err := h.studentRepo.GetByID(ctx, query.StudentID)
	if err != nil {
		return nil, shared.WrapError("query", "GetStudentLectures", shared.ErrNotFound, "student not found", err)
	}

	lectures, err := h.lectureRepo.GetByCourses(ctx, student.EnrolledCourseIDs)
	if err != nil {
		return nil, err
	}

	courseInfo, err := h.courseRepo.GetByIDs(ctx, student.EnrolledCourseIDs)
	if err != nil {
		return nil, err
	}
	coursesByID := make(map[string]*course.Course, len(courseInfo))
	for _, c := range courseInfo {
		coursesByID[c.ID] = c
	}

	result := &GetStudentLecturesResult{
		Lectures: make([]StudentLectureDTO, 0, len(lectures)),
	}
	for _, l := range lectures {
		if l.IsCompleted() {
			result.CompletedCount++
		}
		if query.Status != "" && l.Status != query.Status {
			continue
		}
		dto := StudentLectureDTO{Lecture: toLectureDTO(l)}
		if c, ok := coursesByID[l.CourseID]; ok {
			dto.CourseCode = c.Code
			dto.CourseName = c.Name
		}
		result.Lectures = append(result.Lectures, dto)
	}
	return result, nil
}
