package main

import (
	"context"
	"net/http"
	"time"

	"github.com/edutrack/backend/config"
	"github.com/edutrack/backend/database"
	_ "github.com/edutrack/backend/docs" // Swagger docs - auto-generated
	adminctrl "github.com/edutrack/backend/internal/controller/admin"
	authctrl "github.com/edutrack/backend/internal/controller/auth"
	studentctrl "github.com/edutrack/backend/internal/controller/student"
	teacherctrl "github.com/edutrack/backend/internal/controller/teacher"
	"github.com/edutrack/backend/internal/logger"
	"github.com/edutrack/backend/internal/middleware"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/edutrack/backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title EduTrack LMS API
// @version 1.0
// @description Learning management API: courses, enrollments, materials, quizzes, grades and moderation.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewEnrollmentRepository,
			repository.NewMaterialRepository,
			repository.NewProgressRepository,
			repository.NewAnnouncementRepository,
			repository.NewAssignmentRepository,
			repository.NewSubmissionRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewGradeRepository,
			repository.NewDeletionRequestRepository,
		),

		// Services
		fx.Provide(
			service.NewAuthService,
			service.NewCourseService,
			service.NewEnrollmentService,
			service.NewProgressService,
			service.NewRegradeService,
			service.NewQuizAuthorService,
			service.NewQuizSubmissionService,
			service.NewGradeService,
			service.NewAssignmentService,
			service.NewAdminService,
		),

		// Controllers
		fx.Provide(
			authctrl.NewAuthController,
			studentctrl.NewStudentController,
			teacherctrl.NewTeacherController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authController *authctrl.AuthController,
	studentController *studentctrl.StudentController,
	teacherController *teacherctrl.TeacherController,
	adminController *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.GET("/courses", studentController.ListCourses)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authService))
	{
		authed.GET("/auth/profile", authController.Profile)

		authed.GET("/courses/:course_id", studentController.GetCourse)
		authed.POST("/courses/:course_id/enroll", studentController.Enroll)
		authed.GET("/courses/:course_id/materials", studentController.ListMaterials)
		authed.GET("/courses/:course_id/progress", studentController.CourseProgress)
		authed.GET("/courses/:course_id/quizzes", studentController.ListQuizzes)
		authed.GET("/courses/:course_id/assignments", studentController.ListAssignments)
		authed.GET("/courses/:course_id/announcements", studentController.ListAnnouncements)
		authed.GET("/courses/:course_id/grades", studentController.CourseGrades)
		authed.GET("/courses/:course_id/certificate", studentController.Certificate)

		authed.POST("/materials/:material_id/complete", studentController.MarkMaterialComplete)
		authed.GET("/quizzes/:quiz_id", studentController.GetQuiz)
		authed.POST("/quizzes/:quiz_id/submit", studentController.SubmitQuiz)
		authed.GET("/attempts/:attempt_id", studentController.GetAttempt)
		authed.POST("/assignments/:assignment_id/submit", studentController.SubmitAssignment)

		authed.GET("/my/enrollments", studentController.MyEnrollments)
		authed.GET("/my/transcript", studentController.Transcript)
		authed.GET("/my/dashboard", studentController.Dashboard)
		authed.POST("/my/deletion-request", studentController.RequestAccountDeletion)
	}

	// Teacher routes
	teacher := api.Group("/teacher")
	teacher.Use(middleware.RequireAuth(authService), middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))
	{
		teacher.POST("/courses", teacherController.CreateCourse)
		teacher.GET("/dashboard", teacherController.Dashboard)
		teacher.POST("/courses/:course_id/materials", teacherController.AddMaterial)
		teacher.POST("/courses/:course_id/announcements", teacherController.CreateAnnouncement)
		teacher.POST("/courses/:course_id/assignments", teacherController.CreateAssignment)
		teacher.GET("/courses/:course_id/students", teacherController.CourseRoster)
		teacher.POST("/courses/:course_id/students/:student_id/grades", teacherController.RecordGrade)
		teacher.POST("/courses/:course_id/deletion-request", teacherController.RequestCourseDeletion)

		teacher.POST("/quizzes", teacherController.CreateQuiz)
		teacher.GET("/quizzes/:quiz_id", teacherController.GetQuizWithAnswers)
		teacher.PUT("/quizzes/:quiz_id/active", teacherController.SetQuizActive)
		teacher.DELETE("/quizzes/:quiz_id", teacherController.DeleteQuiz)
		teacher.PUT("/questions/:question_id", teacherController.UpdateQuestion)
		teacher.GET("/assignments/:assignment_id/submissions", teacherController.ListSubmissions)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(authService), middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/users", adminController.ListUsers)
		admin.GET("/analytics", adminController.Analytics)
		admin.GET("/deletion-requests/users", adminController.PendingUserRequests)
		admin.GET("/deletion-requests/courses", adminController.PendingCourseRequests)
		admin.PUT("/deletion-requests/users/:request_id", adminController.ReviewUserRequest)
		admin.PUT("/deletion-requests/courses/:request_id", adminController.ReviewCourseRequest)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("EduTrack API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.CourseMaterial{},
		&model.StudyProgress{},
		&model.Announcement{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
		&model.Grade{},
		&model.UserDeletionRequest{},
		&model.CourseDeletionRequest{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
