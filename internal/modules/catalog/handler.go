package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"fdrs/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public read-side endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/faculties", h.ListFaculties)
	rg.GET("/faculties/:id/resources", h.List)
	rg.GET("/faculties/:id/resources/search", h.Search)
	rg.GET("/resources/:id", h.Detail)
	rg.GET("/resources/:id/download", h.DownloadDocument)
	rg.GET("/resources/:id/cover", h.DownloadCover)
}

// RegisterAdminRoutes exposes the pending queue to admins only.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources/pending", h.ListPending)
}

func (h *Handler) ListFaculties(c *gin.Context) {
	faculties, err := h.service.ListFaculties(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list faculties")
		return
	}
	response.Success(c, http.StatusOK, faculties)
}

func (h *Handler) List(c *gin.Context) {
	facultyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid faculty ID")
		return
	}

	resources, err := h.service.List(c.Request.Context(), facultyID)
	if err != nil {
		if errors.Is(err, ErrFacultyNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Faculty not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list resources")
		return
	}

	response.Success(c, http.StatusOK, resources)
}

func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DETAIL_FAILED", "Failed to load resource")
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) Search(c *gin.Context) {
	facultyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid faculty ID")
		return
	}

	term := c.Query("term")

	result, err := h.service.Search(c.Request.Context(), facultyID, term)
	if err != nil {
		if errors.Is(err, ErrFacultyNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Faculty not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SEARCH_FAILED", "Search failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ListPending(c *gin.Context) {
	pending, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list pending resources")
		return
	}
	response.Success(c, http.StatusOK, pending)
}

func (h *Handler) DownloadDocument(c *gin.Context) {
	h.download(c, true)
}

func (h *Handler) DownloadCover(c *gin.Context) {
	h.download(c, false)
}

func (h *Handler) download(c *gin.Context, document bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	if document {
		file, resource, err := h.service.OpenDocument(c.Request.Context(), id)
		if err != nil {
			h.downloadError(c, err)
			return
		}
		defer file.Close()
		name := filepath.Base(resource.DocumentPath)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.DataFromReader(http.StatusOK, resource.DocumentSize, "application/pdf", file, nil)
		return
	}

	file, resource, err := h.service.OpenCover(c.Request.Context(), id)
	if err != nil {
		h.downloadError(c, err)
		return
	}
	defer file.Close()
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filepath.Base(resource.CoverPath)))
	http.ServeContent(c.Writer, c.Request, filepath.Base(resource.CoverPath), resource.UpdatedAt, file)
}

func (h *Handler) downloadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResourceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrFileMissing):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
	default:
		response.Error(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Failed to download file")
	}
}
