package router

import (
	"net/http"
	"time"

	"stillpoint/internal/config"
	"stillpoint/internal/handlers"
	"stillpoint/internal/models"
	"stillpoint/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, survey *models.Survey, cache *services.ScoreCache) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("stillpoint_session", store))

	// Session-backed middleware comes after session init.
	router.Use(CSRFProtection())
	router.Use(UserLoaderMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	authHandler := handlers.NewAuthHandler(log, cache)
	sessionsHandler := handlers.NewSessionsHandler(log)
	notesHandler := handlers.NewNotesHandler(log)
	onboardingHandler := handlers.NewOnboardingHandler(log, survey)
	analyticsHandler := handlers.NewAnalyticsHandler(log, cache)
	chartsHandler := handlers.NewChartsHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	router.GET("/csrf", func(c *gin.Context) {
		token, _ := c.Get(csrfTokenContextKey)
		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	router.POST("/register", limiter, authHandler.Register)
	router.POST("/login", limiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	api := router.Group("/api")
	api.Use(AuthRequired())
	{
		profile := api.Group("/profile")
		{
			profile.GET("", authHandler.Profile)
			profile.PUT("", authHandler.UpdateInfo)
			profile.PUT("/password", authHandler.UpdatePassword)
			profile.DELETE("", authHandler.DeleteAccount)
		}

		sessionRoutes := api.Group("/sessions")
		{
			sessionRoutes.POST("", sessionsHandler.Create)
			sessionRoutes.GET("", sessionsHandler.List)
			sessionRoutes.DELETE("/:id", sessionsHandler.Delete)
		}

		noteRoutes := api.Group("/notes")
		{
			noteRoutes.POST("", notesHandler.Create)
			noteRoutes.GET("", notesHandler.List)
			noteRoutes.DELETE("/:id", notesHandler.Delete)
		}

		onboarding := api.Group("/onboarding")
		{
			onboarding.PUT("/questionnaire", onboardingHandler.SaveQuestionnaire)
			onboarding.GET("/questionnaire", onboardingHandler.GetQuestionnaire)
			onboarding.PUT("/self-assessment", onboardingHandler.SaveSelfAssessment)
			onboarding.GET("/self-assessment", onboardingHandler.GetSelfAssessment)
		}

		analyticsRoutes := api.Group("/analytics")
		{
			analyticsRoutes.GET("/temporal", analyticsHandler.Temporal)
			analyticsRoutes.GET("/attention", analyticsHandler.Attention)
			analyticsRoutes.GET("/environment", analyticsHandler.Environment)
			analyticsRoutes.GET("/mind-recovery", analyticsHandler.MindRecovery)
			analyticsRoutes.GET("/attachment", analyticsHandler.Attachment)
			analyticsRoutes.GET("/happiness", analyticsHandler.Happiness)
		}

		chartRoutes := api.Group("/charts")
		{
			chartRoutes.GET("/attention", chartsHandler.AttentionPie)
			chartRoutes.GET("/rating-timeline", chartsHandler.RatingTimeline)
			chartRoutes.GET("/presence-timeline", chartsHandler.PresenceTimeline)
		}
	}

	return router
}
