// Package main - точка входа платформы ClassPulse.
//
// ClassPulse замыкает цикл обратной связи между лекцией и оценкой:
// студент рассказывает, что было непонятно, преподаватель видит тихих
// студентов и сложные темы до того, как они превратятся в плохие оценки.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: in-memory репозитории, insight API, event bus
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Application layer
	"github.com/classpulse/classpulse-core/internal/application/command"
	"github.com/classpulse/classpulse-core/internal/application/query"

	// Domain layer
	domaininsight "github.com/classpulse/classpulse-core/internal/domain/insight"
	"github.com/classpulse/classpulse-core/internal/domain/lecture"

	// Infrastructure layer
	"github.com/classpulse/classpulse-core/internal/infrastructure/external/insight"
	"github.com/classpulse/classpulse-core/internal/infrastructure/messaging"
	"github.com/classpulse/classpulse-core/internal/infrastructure/persistence/memory"

	// Packages
	"github.com/classpulse/classpulse-core/config"
	"github.com/classpulse/classpulse-core/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	// Создаём корневой контекст, отменяемый по сигналу завершения
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	// .env опционален: в production переменные приходят из окружения
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	slogLog := setupSlog(cfg)
	appLog := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.Observability.LogCaller,
	})

	slogLog.Info("starting ClassPulse core",
		"env", string(cfg.App.Environment),
		"version", cfg.App.Version,
		"timezone", cfg.App.Timezone,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ИНИЦИАЛИЗАЦИЯ ХРАНИЛИЩА
	// ─────────────────────────────────────────────────────────────────────────
	store := memory.NewStore()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ИНИЦИАЛИЗАЦИЯ EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.AsyncMode = cfg.EventBus.AsyncMode
	busConfig.WorkerPoolSize = cfg.EventBus.WorkerPoolSize
	busConfig.EnableMetrics = cfg.EventBus.EnableMetrics
	busConfig.Logger = slogLog

	eventBus := messaging.NewInMemoryEventBus(busConfig)
	defer func() {
		slogLog.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	if err := eventBus.SubscribeAll(messaging.NewAuditSubscriber(appLog)); err != nil {
		return fmt.Errorf("failed to register audit subscriber: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ВЫБОР АНАЛИЗАТОРА ОБРАТНОЙ СВЯЗИ
	// ─────────────────────────────────────────────────────────────────────────
	var analyzer domaininsight.Analyzer
	aiEnabled := cfg.Features.IsEnabled(config.FeatureInsightsAI, nil)

	if aiEnabled && cfg.Insight.BaseURL != "" {
		clientCfg := insight.DefaultClientConfig(cfg.Insight.BaseURL)
		clientCfg.APIKey = cfg.Insight.APIKey
		clientCfg.Timeout = cfg.Insight.RequestTimeout
		clientCfg.Logger = slogLog
		analyzer = insight.NewClient(clientCfg)
		slogLog.Info("insight analyzer: remote with local fallback", "base_url", cfg.Insight.BaseURL)
	} else {
		analyzer = insight.NewLocalAnalyzer()
		slogLog.Info("insight analyzer: local only")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	handlers := buildHandlers(store, eventBus, analyzer, appLog)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ДЕМОНСТРАЦИОННЫЙ ПРОГОН
	// ─────────────────────────────────────────────────────────────────────────
	// Транспортного слоя пока нет: бинарь прогоняет полный жизненный цикл
	// (регистрация → курс → лекции → отзывы → оценки → аналитика) поверх
	// in-memory ядра и печатает результаты.
	if err := runShowcase(ctx, handlers, slogLog); err != nil {
		return fmt.Errorf("showcase failed: %w", err)
	}

	if cfg.EventBus.EnableMetrics {
		slogLog.Info("event bus totals", "published", eventBus.Metrics().TotalPublished())
	}

	slogLog.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// WIRING
// ══════════════════════════════════════════════════════════════════════════════

// appHandlers собирает все обработчики команд и запросов в одном месте.
type appHandlers struct {
	registerProfessor *command.RegisterProfessorHandler
	registerStudent   *command.RegisterStudentHandler
	createCourse      *command.CreateCourseHandler
	enrollByCode      *command.EnrollByCodeHandler
	scheduleLecture   *command.ScheduleLectureHandler
	transitionLecture *command.TransitionLectureHandler
	submitFeedback    *command.SubmitFeedbackHandler
	createAssessment  *command.CreateAssessmentHandler
	recordGrade       *command.RecordGradeHandler
	publishGrades     *command.PublishGradesHandler
	importRoster      *command.ImportRosterHandler

	findByEmail     *query.FindByEmailHandler
	studentCourses  *query.GetStudentCoursesHandler
	courseLectures  *query.GetCourseLecturesHandler
	studentLectures *query.GetStudentLecturesHandler
	pendingFeedback *query.GetPendingFeedbackHandler
	silentStudents  *query.GetSilentStudentsHandler
	publishedGrades *query.GetPublishedGradesHandler
	studentGPA      *query.GetStudentGPAHandler
	courseInsights  *query.GetCourseInsightsHandler
}

func buildHandlers(
	store *memory.Store,
	eventBus *messaging.InMemoryEventBus,
	analyzer domaininsight.Analyzer,
	log *logger.Logger,
) *appHandlers {
	return &appHandlers{
		registerProfessor: command.NewRegisterProfessorHandler(store.Professors(), eventBus),
		registerStudent:   command.NewRegisterStudentHandler(store.Students(), eventBus),
		createCourse:      command.NewCreateCourseHandler(store.Professors(), store.Courses(), eventBus),
		enrollByCode:      command.NewEnrollByCodeHandler(store.Students(), store.Courses(), eventBus),
		scheduleLecture:   command.NewScheduleLectureHandler(store.Lectures(), store.Courses(), eventBus),
		transitionLecture: command.NewTransitionLectureHandler(store.Lectures(), eventBus),
		submitFeedback:    command.NewSubmitFeedbackHandler(store.Feedback(), store.Lectures(), store.Students(), eventBus),
		createAssessment:  command.NewCreateAssessmentHandler(store.Assessments(), store.Courses(), eventBus),
		recordGrade:       command.NewRecordGradeHandler(store.Grades(), store.Assessments(), store.Students(), eventBus),
		publishGrades:     command.NewPublishGradesHandler(store.Grades(), store.Assessments(), eventBus, log),
		importRoster:      command.NewImportRosterHandler(store.Students(), store.Courses(), eventBus, log),

		findByEmail:     query.NewFindByEmailHandler(store.Professors(), store.Students()),
		studentCourses:  query.NewGetStudentCoursesHandler(store.Students(), store.Courses()),
		courseLectures:  query.NewGetCourseLecturesHandler(store.Lectures(), store.Courses()),
		studentLectures: query.NewGetStudentLecturesHandler(store.Students(), store.Courses(), store.Lectures()),
		pendingFeedback: query.NewGetPendingFeedbackHandler(store.Students(), store.Courses(), store.Lectures(), store.Feedback()),
		silentStudents:  query.NewGetSilentStudentsHandler(store.Courses(), store.Students(), store.Lectures(), store.Feedback()),
		publishedGrades: query.NewGetPublishedGradesHandler(store.Students(), store.Courses(), store.Assessments(), store.Grades()),
		studentGPA:      query.NewGetStudentGPAHandler(store.Students(), store.Courses(), store.Assessments(), store.Grades()),
		courseInsights:  query.NewGetCourseInsightsHandler(store.Courses(), store.Students(), store.Lectures(), store.Feedback(), analyzer),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SHOWCASE
// ══════════════════════════════════════════════════════════════════════════════

// runShowcase прогоняет полный сценарий работы платформы.
func runShowcase(ctx context.Context, h *appHandlers, log *slog.Logger) error {
	// Преподаватель и курс
	prof, err := h.registerProfessor.Handle(ctx, command.RegisterProfessorCommand{
		Name:       "Aliya Nurkhanova",
		Email:      "a.nurkhanova@university.edu",
		Department: "Computer Science",
	})
	if err != nil {
		return err
	}

	courseRes, err := h.createCourse.Handle(ctx, command.CreateCourseCommand{
		ProfessorID: prof.ProfessorID,
		Name:        "Distributed Systems",
		Code:        "CS301",
		Semester:    "Fall 2026",
		Department:  "Computer Science",
		Credits:     4,
	})
	if err != nil {
		return err
	}
	courseID := courseRes.Course.ID
	log.Info("course created",
		"code", courseRes.Course.Code,
		"enrollment_code", string(courseRes.Course.EnrollmentCode),
	)

	// Студенты записываются по коду
	studentIDs := make([]string, 0, 3)
	for i, s := range []struct{ name, email, roll string }{
		{"Daniyar Seitkali", "d.seitkali@university.edu", "CS-2024-017"},
		{"Aruzhan Bekova", "a.bekova@university.edu", "CS-2024-021"},
		{"Timur Akhmetov", "t.akhmetov@university.edu", "CS-2024-034"},
	} {
		reg, err := h.registerStudent.Handle(ctx, command.RegisterStudentCommand{
			Name:       s.name,
			Email:      s.email,
			RollNumber: s.roll,
			Department: "Computer Science",
		})
		if err != nil {
			return err
		}
		if _, err := h.enrollByCode.Handle(ctx, command.EnrollByCodeCommand{
			StudentID: reg.StudentID,
			Code:      string(courseRes.Course.EnrollmentCode),
		}); err != nil {
			return err
		}
		studentIDs = append(studentIDs, reg.StudentID)
		log.Info("student enrolled", "n", i+1, "roll", s.roll)
	}

	// Лекция: scheduled → live → completed
	lec, err := h.scheduleLecture.Handle(ctx, command.ScheduleLectureCommand{
		CourseID:        courseID,
		Title:           "Consensus and Raft",
		Date:            time.Now().Add(-24 * time.Hour),
		DurationMinutes: 90,
		Topics:          []string{"leader election", "log replication", "safety"},
	})
	if err != nil {
		return err
	}
	for _, target := range []lecture.Status{lecture.StatusLive, lecture.StatusCompleted} {
		if _, err := h.transitionLecture.Handle(ctx, command.TransitionLectureCommand{
			LectureID: lec.Lecture.ID,
			Target:    target,
		}); err != nil {
			return err
		}
	}

	// Два студента оставляют отзывы, третий молчит
	for _, sid := range studentIDs[:2] {
		if _, err := h.submitFeedback.Handle(ctx, command.SubmitFeedbackCommand{
			StudentID:     sid,
			LectureID:     lec.Lecture.ID,
			Understanding: "partial",
			Comment:       "log replication went too fast",
		}); err != nil {
			return err
		}
	}

	// Оценивание: черновики → публикация
	assess, err := h.createAssessment.Handle(ctx, command.CreateAssessmentCommand{
		CourseID:  courseID,
		Name:      "Midterm",
		Type:      "midterm",
		MaxMarks:  100,
		WeightPct: 40,
	})
	if err != nil {
		return err
	}
	for i, marks := range []float64{92, 78, 65} {
		m := marks
		if _, err := h.recordGrade.Handle(ctx, command.RecordGradeCommand{
			AssessmentID: assess.Assessment.ID,
			StudentID:    studentIDs[i],
			Marks:        &m,
		}); err != nil {
			return err
		}
	}
	pub, err := h.publishGrades.Handle(ctx, command.PublishGradesCommand{
		AssessmentID: assess.Assessment.ID,
	})
	if err != nil {
		return err
	}
	log.Info("grades published", "published", pub.PublishedCount, "weight_sum", pub.WeightSum)

	// Расписание первого студента
	schedule, err := h.studentLectures.Handle(ctx, query.GetStudentLecturesQuery{StudentID: studentIDs[0]})
	if err != nil {
		return err
	}
	log.Info("student schedule", "lectures", len(schedule.Lectures), "completed", schedule.CompletedCount)

	// Аналитика
	silent, err := h.silentStudents.Handle(ctx, query.GetSilentStudentsQuery{CourseID: courseID})
	if err != nil {
		return err
	}
	for _, s := range silent.Silent {
		log.Info("silent student detected", "roll", s.RollNumber, "feedback_count", s.FeedbackCount)
	}

	gpa, err := h.studentGPA.Handle(ctx, query.GetStudentGPAQuery{StudentID: studentIDs[0]})
	if err != nil {
		return err
	}
	if gpa.HasData {
		log.Info("student GPA", "gpa", fmt.Sprintf("%.2f", gpa.GPA))
	}

	insights, err := h.courseInsights.Handle(ctx, query.GetCourseInsightsQuery{CourseID: courseID})
	if err != nil {
		return err
	}
	log.Info("course insights",
		"source", insights.Report.Source,
		"sentiment", string(insights.Report.Sentiment),
		"summary", insights.Report.Summary,
	)

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupSlog настраивает структурированное логирование для инфраструктуры.
func setupSlog(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		// JSON формат для production (лучше для агрегаторов логов)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Текстовый формат для development (лучше читается)
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
