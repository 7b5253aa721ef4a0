package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/founderfit/cofounder-api/config"
	"github.com/founderfit/cofounder-api/database"
	_ "github.com/founderfit/cofounder-api/docs" // Swagger docs - auto-generated
	"github.com/founderfit/cofounder-api/internal/logger"
	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/founderfit/cofounder-api/internal/repository"
	"github.com/founderfit/cofounder-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	adminctrl "github.com/founderfit/cofounder-api/internal/controller/admin"
	userctrl "github.com/founderfit/cofounder-api/internal/controller/user"
)

// @title Co-founder Matching API
// @version 1.0
// @description Working-style assessment, bidirectional compatibility scoring and the match lifecycle for co-founder matching.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			database.NewRedis,    // Provides *redis.Client (nil disables caching)
			NewGinEngine,
			NewRand,
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewSessionRepository,
			repository.NewProfileRepository,
			repository.NewUserRepository,
			repository.NewMatchRepository,
			repository.NewNotificationRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAssessmentService,
			service.NewCompatibilityService,
			service.NewMatchIntroService,
			service.NewNotifierService,
			service.NewMatchingService,
			service.NewAdminQuestionService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewAssessmentController,
			userctrl.NewMatchController,
			adminctrl.NewQuestionController,
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

// NewRand provides the injectable randomness used by question selection, so
// tests can substitute a seeded source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func NewGinEngine() *gin.Engine {
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
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	assessmentCtrl *userctrl.AssessmentController,
	matchCtrl *userctrl.MatchController,
	questionCtrl *adminctrl.QuestionController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		questionsGroup := adminAPIGroup.Group("/questions")
		questionsGroup.POST("", questionCtrl.CreateQuestion)
		questionsGroup.GET("", questionCtrl.ListQuestions)
		questionsGroup.PATCH("/:id/deactivate", questionCtrl.DeactivateQuestion)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.POST("/assessments/start", assessmentCtrl.StartOrResume)
		userAPIGroup.POST("/assessments/:session_id/submit", assessmentCtrl.Submit)
		userAPIGroup.GET("/users/:user_id/profile", assessmentCtrl.GetProfile)

		userAPIGroup.POST("/users/:user_id/matches/run", matchCtrl.RunMatching)
		userAPIGroup.GET("/users/:user_id/matches", matchCtrl.ListActiveMatches)
		userAPIGroup.POST("/matches/:match_id/respond", matchCtrl.Respond)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Co-founder matching API starting on port %s", cfg.Server.Port)
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
		&model.Skill{},
		&model.RoleNeed{},
		&model.QuizQuestion{},
		&model.AssessmentSession{},
		&model.AssessmentResponse{},
		&model.WorkingStyleProfile{},
		&model.Match{},
		&model.Notification{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
