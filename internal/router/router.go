package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ballotbox/internal/config"
	"ballotbox/internal/handler"
	"ballotbox/internal/metrics"
	authmw "ballotbox/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth      *handler.AuthHandler
	Election  *handler.ElectionHandler
	Candidate *handler.CandidateHandler
	Vote      *handler.VoteHandler
	Result    *handler.ResultHandler
	Admin     *handler.AdminHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, authorizer authmw.Authorizer, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/elections", h.Election.List)
	api.GET("/elections/:id", h.Election.Get)
	api.GET("/elections/:electionId/candidates", h.Candidate.ListByElection)
	api.GET("/results/:electionId", h.Result.Get)
	api.GET("/results/:electionId/export", h.Result.Export)

	// Secured routes (require JWT authentication)
	secured := api.Group("", authmw.JWT(authorizer))

	secured.GET("/auth/me", h.Auth.Me)
	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/candidates/:id", h.Candidate.Get)
	secured.POST("/vote/castVote", h.Vote.CastVote)
	secured.POST("/vote/check", h.Vote.CheckVote)

	// Admin routes
	admin := secured.Group("", authmw.RequireAdmin)

	admin.POST("/elections/create", h.Election.Create)
	admin.PUT("/elections/update/:id", h.Election.Update)
	admin.DELETE("/elections/delete/:id", h.Election.Delete)
	admin.POST("/candidates/create", h.Candidate.Create)
	admin.GET("/admin/pending-voters", h.Admin.PendingVoters)
	admin.PUT("/admin/voters/:id/approve", h.Admin.Approve)
	admin.PUT("/admin/voters/:id/reject", h.Admin.Reject)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
