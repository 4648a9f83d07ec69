package handler

import (
	"trackme/internal/domain"
	"trackme/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Router holds everything needed to mount the API.
type Router struct {
	Resolver          domain.IdentityResolver
	SessionCookieName string

	Auth    *AuthHandler
	User    *UserHandler
	Problem *ProblemHandler
	Health  *HealthHandler
}

// Register mounts /health and every /api route on app.
func (r *Router) Register(app *fiber.App) {
	protected := middleware.Protected(r.Resolver, r.SessionCookieName)
	optional := middleware.OptionalAuth(r.Resolver, r.SessionCookieName)
	validate := middleware.NewValidationMiddleware()

	if r.Health != nil {
		app.Get("/health", r.Health.Health)
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Get("/google", r.Auth.GoogleLogin)
	authGroup.Get("/google/callback", r.Auth.GoogleCallback)
	authGroup.Get("/check", optional, r.Auth.CheckAuth)
	authGroup.Get("/token/:token", r.Auth.VerifyToken)
	authGroup.Get("/logout", r.Auth.Logout)
	authGroup.Post("/logout", r.Auth.Logout)

	userGroup := api.Group("/user", protected)
	userGroup.Get("/profile", r.User.GetProfile)
	userGroup.Put("/profile", r.User.UpdateProfile)

	problems := api.Group("/problems", protected)
	problems.Post("/add-problem", r.Problem.AddProblem)
	problems.Post("/user-problems", r.Problem.AddUserProblem)
	problems.Get("/user-problems", validate.ValidateListQuery(), r.Problem.GetUserProblems)
	problems.Put("/user-problems/:id", r.Problem.UpdateUserProblem)
	problems.Delete("/user-problems/:id", r.Problem.DeleteUserProblem)
	problems.Post("/user-problems/:id/revisions", r.Problem.AddRevision)
	problems.Put("/user-problems/:id/revisions/:revisionNo", validate.ValidateRevisionNo(), r.Problem.UpdateRevision)
	problems.Delete("/user-problems/:id/revisions/:revisionNo", validate.ValidateRevisionNo(), r.Problem.DeleteRevision)
	problems.Get("/stats", r.Problem.GetStats)
}
