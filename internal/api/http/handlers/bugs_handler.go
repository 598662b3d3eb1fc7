package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bountyboard/bounty-service/internal/api/dto"
	"github.com/bountyboard/bounty-service/internal/auth"
	"github.com/bountyboard/bounty-service/internal/domain"
	"github.com/bountyboard/bounty-service/internal/service"
	apperrors "github.com/bountyboard/bounty-service/pkg/util"
)

// BugsHandler manages bug registry endpoints.
type BugsHandler struct {
	service *service.BugService
}

// NewBugsHandler constructs handler.
func NewBugsHandler(bugService *service.BugService) *BugsHandler {
	return &BugsHandler{service: bugService}
}

// CreateBug POST /bugs.
func (h *BugsHandler) CreateBug(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateBugRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}

	bug, err := h.service.Create(c.Context(), principal.User.ID, service.BugCreateInput{
		Title:        req.Title,
		Description:  req.Description,
		BountyAmount: req.BountyAmount,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bugResponse(bug, nil)})
}

// ListBugs GET /bugs.
func (h *BugsHandler) ListBugs(c *fiber.Ctx) error {
	bugs, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.BugResponse, 0, len(bugs))
	for i := range bugs {
		items = append(items, bugResponse(&bugs[i].Bug, &bugs[i].Poster))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetBug GET /bugs/:id.
func (h *BugsHandler) GetBug(c *fiber.Ctx) error {
	bug, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bugResponse(&bug.Bug, &bug.Poster)})
}

// GetBugHistory GET /bugs/:id/history.
func (h *BugsHandler) GetBugHistory(c *fiber.Ctx) error {
	entries, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.BugHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.BugHistoryResponse{
			ID:         entry.ID,
			ChangedBy:  entry.ChangedBy,
			ChangeType: entry.ChangeType,
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func bugResponse(bug *domain.Bug, poster *domain.PosterIdentity) dto.BugResponse {
	resp := dto.BugResponse{
		ID:           bug.ID,
		Title:        bug.Title,
		Description:  bug.Description,
		BountyAmount: bug.BountyAmount,
		Status:       bug.Status,
		PostedBy:     bug.PostedBy,
		Winner:       bug.Winner,
		CreatedAt:    bug.CreatedAt,
		UpdatedAt:    bug.UpdatedAt,
		ClosedAt:     bug.ClosedAt,
	}
	if poster != nil {
		resp.Poster = &dto.PosterResponse{
			ID:    poster.ID,
			Name:  poster.Name,
			Email: poster.Email,
		}
	}
	return resp
}
