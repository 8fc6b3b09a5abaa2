package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"idea-portal-api/models"
	"idea-portal-api/services"
)

// parseIdeaID reads the :id route parameter. A non-numeric id cannot match
// any record, so it reports false and the caller answers 404.
func parseIdeaID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListIdeas serves both GET /ideas and GET /submissions.
func ListIdeas(c *gin.Context) {
	ideas, err := ideaService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ideas"})
		return
	}
	c.JSON(http.StatusOK, ideas)
}

// GetIdea fetches a single idea by id.
func GetIdea(c *gin.Context) {
	id, ok := parseIdeaID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	idea, err := ideaService.Get(id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, idea)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load idea"})
	}
}

// GetIdeaSummary returns portal-wide workflow counts for the admin dashboard.
func GetIdeaSummary(c *gin.Context) {
	summary, err := ideaService.Summarize()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetUserIdeas returns an employee's ideas plus derived counters.
func GetUserIdeas(c *gin.Context) {
	result, err := ideaService.ListForEmployee(c.Param("employeeId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ideas"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateStatusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

// UpdateIdeaStatus applies the generic transition for PUT /update-status/:id.
func UpdateIdeaStatus(c *gin.Context) {
	id, ok := parseIdeaID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	idea, err := ideaService.SetStatus(id, req.Status, req.RejectionReason)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Idea status updated", "idea": idea})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update idea status"})
	}
}

type approveIdeaRequest struct {
	IdeaID  uint   `json:"ideaId"`
	Message string `json:"message"`
}

// ApproveIdea is the first-tier admin action: recommend to second-tier review.
func ApproveIdea(c *gin.Context) {
	var req approveIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IdeaID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ideaId is required"})
		return
	}

	idea, err := ideaService.Recommend(req.IdeaID, req.Message)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Idea approved and recommended to L2", "idea": idea})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve idea"})
	}
}

type rejectIdeaRequest struct {
	Reason string `json:"reason"`
}

// RejectIdea handles PUT /reject-ideas/:id with a mandatory reason.
func RejectIdea(c *gin.Context) {
	id, ok := parseIdeaID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	var req rejectIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason required"})
		return
	}

	idea, err := ideaService.Reject(id, req.Reason)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Idea rejected", "idea": idea})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject idea"})
	}
}
