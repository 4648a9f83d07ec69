package handler

import (
	"errors"
	"trackme/internal/domain"
	"trackme/internal/dto"
	"trackme/internal/logger"
	"trackme/internal/middleware"
	"trackme/internal/service"
	"trackme/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProblemHandler serves the catalog and tracking routes. All of them sit
// behind middleware.Protected.
type ProblemHandler struct {
	catalog   service.CatalogService
	tracking  service.TrackingService
	validator *validation.Validator
}

func NewProblemHandler(catalog service.CatalogService, tracking service.TrackingService) *ProblemHandler {
	return &ProblemHandler{
		catalog:   catalog,
		tracking:  tracking,
		validator: validation.NewValidator(),
	}
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		logger.Get().Warn("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	return nil
}

// AddProblem resolves a catalog problem, fetching it upstream on first use.
// @Summary Resolve a catalog problem
// @Description Returns the cached problem or fetches it from LeetCode / GeeksforGeeks.
// @Tags problems
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.AddProblemRequest true "Problem reference"
// @Success 200 {object} dto.ProblemEnvelope
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 404 {object} middleware.ErrorResponse "Not found upstream"
// @Failure 502 {object} middleware.ErrorResponse "Upstream failure"
// @Router /problems/add-problem [post]
func (h *ProblemHandler) AddProblem(c *fiber.Ctx) error {
	var req dto.AddProblemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	slug, platform, err := h.validator.ValidateAddProblem(req)
	if err != nil {
		return err
	}

	problem, err := h.catalog.ResolveProblem(c.UserContext(), slug, platform)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProblemEnvelope{
		Message: "Problem fetched successfully",
		Problem: dto.NewProblemResponse(problem),
	})
}

// AddUserProblem starts tracking a problem.
// @Summary Track a problem
// @Tags problems
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.AddUserProblemRequest true "Problem to track"
// @Success 201 {object} dto.UserProblemEnvelope
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.AlreadyTrackedResponse "Already tracked"
// @Router /problems/user-problems [post]
func (h *ProblemHandler) AddUserProblem(c *fiber.Ctx) error {
	var req dto.AddUserProblemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	in, err := h.validator.ValidateAddUserProblem(req)
	if err != nil {
		return err
	}

	up, err := h.tracking.AddUserProblem(c.UserContext(), middleware.CurrentUserID(c), in)
	if err != nil {
		var tracked *domain.AlreadyTrackedError
		if errors.As(err, &tracked) {
			return c.Status(fiber.StatusConflict).JSON(dto.AlreadyTrackedResponse{
				Error:       "Problem already in your tracking list",
				Code:        string(domain.ErrAlreadyTracked),
				UserProblem: dto.NewUserProblemResponse(tracked.Existing),
			})
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserProblemEnvelope{
		Message:     "Problem added to tracking list successfully",
		UserProblem: dto.NewUserProblemResponse(up),
	})
}

// GetUserProblems lists the user's tracking records.
// @Summary List tracked problems
// @Tags problems
// @Security ApiKeyAuth
// @Produce json
// @Param status query string false "Todo or Completed"
// @Param difficulty query string false "Easy, Medium or Hard"
// @Param platform query string false "leetcode or gfg"
// @Param search query string false "Case-insensitive title substring"
// @Param dateFrom query string false "Solved on or after (YYYY-MM-DD)"
// @Param dateTo query string false "Solved on or before (YYYY-MM-DD)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} dto.UserProblemsResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid filters"
// @Router /problems/user-problems [get]
func (h *ProblemHandler) GetUserProblems(c *fiber.Ctx) error {
	filter, ok := c.Locals(middleware.ValidatedListFilterKey).(domain.ListFilter)
	if !ok {
		return domain.NewInternalError("List filter missing from request context", nil)
	}

	result, err := h.tracking.ListUserProblems(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserProblemsResponse{
		UserProblems: dto.NewUserProblemResponses(result.Items),
		Pagination:   dto.NewPaginationInfo(filter.Page, filter.Limit, result.Total),
	})
}

// UpdateUserProblem applies a partial update.
// @Summary Update a tracked problem
// @Tags problems
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tracking record id"
// @Param body body dto.UpdateUserProblemRequest true "Fields to change"
// @Success 200 {object} dto.UserProblemEnvelope
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 404 {object} middleware.ErrorResponse "Not found"
// @Router /problems/user-problems/{id} [put]
func (h *ProblemHandler) UpdateUserProblem(c *fiber.Ctx) error {
	var req dto.UpdateUserProblemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	in, err := h.validator.ValidateUpdateUserProblem(req)
	if err != nil {
		return err
	}

	up, err := h.tracking.UpdateUserProblem(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserProblemEnvelope{
		Message:     "User problem updated successfully",
		UserProblem: dto.NewUserProblemResponse(up),
	})
}

// DeleteUserProblem stops tracking a problem. The catalog entry stays.
// @Summary Delete a tracked problem
// @Tags problems
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tracking record id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Not found"
// @Router /problems/user-problems/{id} [delete]
func (h *ProblemHandler) DeleteUserProblem(c *fiber.Ctx) error {
	if err := h.tracking.DeleteUserProblem(c.UserContext(), middleware.CurrentUserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User problem deleted successfully"})
}

// AddRevision appends a revision with the next free number.
// @Summary Add a revision
// @Tags revisions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tracking record id"
// @Param body body dto.RevisionRequest true "Revision notes"
// @Success 200 {object} dto.UserProblemEnvelope
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 404 {object} middleware.ErrorResponse "Not found"
// @Router /problems/user-problems/{id}/revisions [post]
func (h *ProblemHandler) AddRevision(c *fiber.Ctx) error {
	var req dto.RevisionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	up, err := h.tracking.AddRevision(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"), req.RevisionNotes)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserProblemEnvelope{
		Message:     "Revision added successfully",
		UserProblem: dto.NewUserProblemResponse(up),
	})
}

// UpdateRevision rewrites the notes of one revision and refreshes its date.
// @Summary Update a revision
// @Tags revisions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tracking record id"
// @Param revisionNo path int true "Revision number"
// @Param body body dto.RevisionRequest true "Revision notes"
// @Success 200 {object} dto.UserProblemEnvelope
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 404 {object} middleware.ErrorResponse "Record or revision not found"
// @Router /problems/user-problems/{id}/revisions/{revisionNo} [put]
func (h *ProblemHandler) UpdateRevision(c *fiber.Ctx) error {
	var req dto.RevisionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	no, _ := c.Locals(middleware.ValidatedRevisionNoKey).(int)

	up, err := h.tracking.UpdateRevision(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"), no, req.RevisionNotes)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserProblemEnvelope{
		Message:     "Revision updated successfully",
		UserProblem: dto.NewUserProblemResponse(up),
	})
}

// DeleteRevision removes one revision. An absent revision is not an error.
// @Summary Delete a revision
// @Tags revisions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tracking record id"
// @Param revisionNo path int true "Revision number"
// @Success 200 {object} dto.UserProblemEnvelope
// @Failure 400 {object} middleware.ErrorResponse "Invalid revision number"
// @Failure 404 {object} middleware.ErrorResponse "Record not found"
// @Router /problems/user-problems/{id}/revisions/{revisionNo} [delete]
func (h *ProblemHandler) DeleteRevision(c *fiber.Ctx) error {
	no, _ := c.Locals(middleware.ValidatedRevisionNoKey).(int)

	up, err := h.tracking.DeleteRevision(c.UserContext(), middleware.CurrentUserID(c), c.Params("id"), no)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserProblemEnvelope{
		Message:     "Revision deleted successfully",
		UserProblem: dto.NewUserProblemResponse(up),
	})
}

// GetStats returns the user's aggregate counts.
// @Summary Tracking statistics
// @Tags problems
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.StatsEnvelope
// @Router /problems/stats [get]
func (h *ProblemHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.tracking.GetStats(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStatsEnvelope(stats))
}
