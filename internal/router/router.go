package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"aura/internal/config"
	apperrors "aura/internal/errors"
	"aura/internal/handler"
	"aura/internal/logger"
	"aura/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	aiHandler *handler.AIHandler,
	pdfHandler *handler.PDFHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit("100M"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(cfg.Development())

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "OK",
			"message": "Aura AI Backend is running",
		})
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: every request passes the gate, which verifies the
	// bearer token and attaches the resolved identity to the context.
	secured := api.Group("", gate(authService))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)

	secured.POST("/ai/chat", aiHandler.Chat)
	secured.POST("/ai/pdf-chat", aiHandler.PDFChat)
	secured.POST("/ai/generate-questions", aiHandler.GenerateQuestions)
	secured.POST("/ai/summarize", aiHandler.Summarize)
	secured.POST("/ai/notes", aiHandler.GenerateNotes)
	secured.POST("/ai/question-paper", aiHandler.QuestionPaper)
	secured.POST("/ai/explain", aiHandler.Explain)

	secured.POST("/files/upload-pdf", pdfHandler.Upload)
	secured.GET("/files/pdfs", pdfHandler.List)
	secured.POST("/files/generate", pdfHandler.Generate)
	secured.DELETE("/files/pdf/:pdfId", pdfHandler.Delete)
}

// gate builds the auth middleware. Token verification is delegated to the
// auth service so a token whose subject no longer exists is rejected too.
func gate(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.UserContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return authService.VerifyToken(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}

// newHTTPErrorHandler converts every error escaping a handler into the
// {success:false, message} JSON shape. Nothing crashes the process; detail
// of unclassified errors is suppressed unless verbose is set.
func newHTTPErrorHandler(verbose bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := apperrors.MapErrorToHTTP(err, verbose)
		if status >= http.StatusInternalServerError {
			logger.Sugar.Errorw("request failed", "uri", c.Request().RequestURI, "error", err)
		}
		if c.Request().Method == http.MethodHead {
			c.NoContent(status)
			return
		}
		c.JSON(status, body)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
