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

// SubmissionsHandler manages submission workflow endpoints.
type SubmissionsHandler struct {
	service *service.SubmissionService
}

// NewSubmissionsHandler constructs handler.
func NewSubmissionsHandler(submissionService *service.SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{service: submissionService}
}

// SubmitSolution POST /submissions/submit.
func (h *SubmissionsHandler) SubmitSolution(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitSolutionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BugID == "" || strings.TrimSpace(req.SolutionDescription) == "" || strings.TrimSpace(req.ProofLink) == "" {
		return apperrors.NewValidationError("bug_id, solution_description, proof_link required", nil)
	}

	submission, err := h.service.Submit(c.Context(), principal.User.ID, service.SubmitInput{
		BugID:               req.BugID,
		SolutionDescription: req.SolutionDescription,
		ProofLink:           req.ProofLink,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": submissionResponse(submission, nil)})
}

// ListForBug GET /submissions/bug/:bugId.
func (h *SubmissionsHandler) ListForBug(c *fiber.Ctx) error {
	submissions, err := h.service.ListForBug(c.Context(), c.Params("bugId"))
	if err != nil {
		return err
	}
	items := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		items = append(items, submissionResponse(&submissions[i].Submission, &submissions[i].Submitter))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApproveSubmission PUT /submissions/approve/:id.
func (h *SubmissionsHandler) ApproveSubmission(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bug, err := h.service.Approve(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bugResponse(bug, nil)})
}

// RejectSubmission PUT /submissions/reject/:id.
func (h *SubmissionsHandler) RejectSubmission(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	submission, err := h.service.Reject(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": submissionResponse(submission, nil)})
}

func submissionResponse(submission *domain.Submission, submitter *domain.SubmitterIdentity) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		ID:                  submission.ID,
		BugID:               submission.BugID,
		SubmittedBy:         submission.SubmittedBy,
		SolutionDescription: submission.SolutionDescription,
		ProofLink:           submission.ProofLink,
		Status:              submission.Status,
		CreatedAt:           submission.CreatedAt,
		UpdatedAt:           submission.UpdatedAt,
	}
	if submitter != nil {
		resp.Submitter = &dto.SubmitterResponse{
			ID:    submitter.ID,
			Name:  submitter.Name,
			Email: submitter.Email,
		}
	}
	return resp
}
