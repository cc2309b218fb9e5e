package moderation

import (
	"errors"
	"net/http"
	"strconv"

	"fdrs/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages HTTP interactions for the moderation workflow.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the submitter-facing endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/faculties/:id/resources", h.Submit)
	rg.DELETE("/resources/:id", h.Delete)
}

// RegisterAdminRoutes registers approve/decline under the admin-gated group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/resources/:id/approve", h.Approve)
	rg.POST("/resources/:id/decline", h.Decline)
}

func (h *Handler) Submit(c *gin.Context) {
	userID := c.GetInt64("user_id")
	isAdmin := c.GetBool("is_admin")

	facultyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid faculty ID")
		return
	}

	req := SubmitRequest{
		Title:       c.PostForm("title"),
		FirstName:   c.PostForm("firstname"),
		LastName:    c.PostForm("lastname"),
		Description: c.PostForm("description"),
		RelatedLink: c.PostForm("related_link"),
	}

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "UPLOAD_FAILED", "Could not read document file")
			return
		}
		defer f.Close()
		req.Document = &FileInput{Reader: f, Filename: fh.Filename}
	}

	if fh, err := c.FormFile("img"); err == nil {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "UPLOAD_FAILED", "Could not read cover image")
			return
		}
		defer f.Close()
		req.Cover = &FileInput{Reader: f, Filename: fh.Filename}
	}

	res, err := h.service.Submit(c.Request.Context(), userID, facultyID, isAdmin, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title, author name and description must not be empty")
		case errors.Is(err, ErrFacultyNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Faculty not found")
		case errors.Is(err, ErrTitleTaken):
			response.Error(c, http.StatusConflict, "CONFLICT", "A resource with this title already exists")
		case errors.Is(err, ErrUpload):
			response.Error(c, http.StatusBadRequest, "UPLOAD_FAILED", "Both a document and a cover image are required")
		default:
			response.Error(c, http.StatusInternalServerError, "SUBMIT_FAILED", "Failed to submit resource")
		}
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	res, warnings, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, ErrAlreadyModerated):
			response.Error(c, http.StatusConflict, "ALREADY_MODERATED", "Resource has already been moderated")
		default:
			response.Error(c, http.StatusInternalServerError, "APPROVE_FAILED", "Failed to approve resource")
		}
		return
	}

	response.SuccessWithWarnings(c, http.StatusOK, res, warnings)
}

func (h *Handler) Decline(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	report, err := h.service.Decline(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, ErrAlreadyModerated):
			response.Error(c, http.StatusConflict, "ALREADY_MODERATED", "Resource has already been moderated")
		default:
			response.Error(c, http.StatusInternalServerError, "DECLINE_FAILED", "Failed to decline resource")
		}
		return
	}

	response.SuccessWithWarnings(c, http.StatusOK, report, report.Warnings)
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	isAdmin := c.GetBool("is_admin")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	report, err := h.service.Delete(c.Request.Context(), id, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot delete this resource")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete resource")
		}
		return
	}

	response.SuccessWithWarnings(c, http.StatusOK, report, report.Warnings)
}
