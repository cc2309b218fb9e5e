package comment

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fdrs/internal/domain"
	"fdrs/internal/pkg/response"
	"fdrs/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves the comment thread on a resource.
type Handler struct {
	comments  *repository.CommentRepository
	resources *repository.ResourceRepository
}

func NewHandler(comments *repository.CommentRepository, resources *repository.ResourceRepository) *Handler {
	return &Handler{comments: comments, resources: resources}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resources/:id/comments", h.Create)
}

type createRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	resourceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Body) == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Comment body must not be empty")
		return
	}

	if _, err := h.resources.GetByID(c.Request.Context(), resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "COMMENT_FAILED", "Failed to add comment")
		return
	}

	comment := &domain.Comment{
		UserID:     userID,
		ResourceID: resourceID,
		Body:       strings.TrimSpace(req.Body),
	}
	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		response.Error(c, http.StatusInternalServerError, "COMMENT_FAILED", "Failed to add comment")
		return
	}

	response.Success(c, http.StatusCreated, comment)
}
