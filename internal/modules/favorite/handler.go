package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"fdrs/internal/pkg/response"
	"fdrs/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler manages a user's bookmarks. Favorites are removed by the
// moderation cascade when their resource goes away, so everything here is
// plain per-user CRUD.
type Handler struct {
	favorites *repository.FavoriteRepository
	resources *repository.ResourceRepository
}

func NewHandler(favorites *repository.FavoriteRepository, resources *repository.ResourceRepository) *Handler {
	return &Handler{favorites: favorites, resources: resources}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("/:resourceId", h.Add)
		favorites.DELETE("/:resourceId", h.Remove)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	favorites, err := h.favorites.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to get favorites")
		return
	}

	response.Success(c, http.StatusOK, favorites)
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetInt64("user_id")

	resourceID, err := strconv.ParseInt(c.Param("resourceId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	if _, err := h.resources.GetByID(c.Request.Context(), resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FAVORITE_FAILED", "Failed to add favorite")
		return
	}

	fav, err := h.favorites.Add(c.Request.Context(), userID, resourceID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			response.Error(c, http.StatusConflict, "CONFLICT", "Resource already in favorites")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FAVORITE_FAILED", "Failed to add favorite")
		return
	}

	response.Success(c, http.StatusCreated, fav)
}

func (h *Handler) Remove(c *gin.Context) {
	userID := c.GetInt64("user_id")

	resourceID, err := strconv.ParseInt(c.Param("resourceId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), userID, resourceID); err != nil {
		if errors.Is(err, repository.ErrFavoriteMissing) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Favorite not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FAVORITE_FAILED", "Failed to remove favorite")
		return
	}

	c.Status(http.StatusNoContent)
}
