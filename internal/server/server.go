package server

import (
	"context"
	"net/http"
	"time"

	"clubpay/internal/auth"
	"clubpay/internal/config"
	"clubpay/internal/course"
	"clubpay/internal/payment"
	"clubpay/internal/statistics"
	"clubpay/internal/training"
	"clubpay/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

// New wires repositories, services and handlers. notifier may be nil.
func New(db *sqlx.DB, cfg *config.Config, notifier payment.Notifier) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	courseService := course.NewService(course.NewRepository(db))
	trainingService := training.NewService(training.NewRepository(db), userRepo)
	paymentService := payment.NewService(db, payment.NewRepository(db), notifier)
	statisticsService := statistics.NewService(statistics.NewRepository(db))

	userHandler := user.NewHandler(userService)
	courseHandler := course.NewHandler(courseService)
	trainingHandler := training.NewHandler(trainingService)
	paymentHandler := payment.NewHandler(paymentService)
	statisticsHandler := statistics.NewHandler(statisticsService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me/iban", userHandler.UpdateIBAN)

		protected.POST("/trainings", trainingHandler.CreateTraining)
		protected.GET("/trainings", trainingHandler.ListTrainings)
		protected.GET("/trainings/:id", trainingHandler.GetTraining)
		protected.PUT("/trainings/:id", trainingHandler.UpdateTraining)
		protected.DELETE("/trainings/:id", trainingHandler.DeleteTraining)
		protected.GET("/trainers/:id/report", trainingHandler.TrainerReport)

		protected.GET("/courses", courseHandler.ListCourses)
		protected.GET("/courses/:id", courseHandler.GetCourse)
		protected.GET("/cost-centers", courseHandler.ListCostCenters)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.PATCH("/trainings/:id/status", trainingHandler.ChangeStatus)
		admin.GET("/trainings/duplicates", trainingHandler.FindDuplicates)

		admin.POST("/payments", paymentHandler.CreatePayment)
		admin.GET("/payments", paymentHandler.ListPayments)
		admin.GET("/payments/:id", paymentHandler.GetPayment)
		admin.DELETE("/payments/:id", paymentHandler.DeletePayment)
		admin.GET("/payments/:id/compensations", paymentHandler.ListCompensations)

		admin.GET("/statistics/trainings", statisticsHandler.TrainingStatistics)

		admin.POST("/courses", courseHandler.CreateCourse)
		admin.POST("/cost-centers", courseHandler.CreateCostCenter)
		admin.DELETE("/cost-centers/:id", courseHandler.DeleteCostCenter)
	}

	router.GET("/health", Health(db))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
