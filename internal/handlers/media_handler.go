package handlers

import (
	"strconv"

	"mediarate-backend/internal/models"
	"mediarate-backend/internal/services"
	"mediarate-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MediaHandler struct {
	service services.MediaService
	logger  *logrus.Logger
}

func NewMediaHandler(service services.MediaService, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{
		service: service,
		logger:  logger,
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func (r *MediaRequest) toModel(createdBy uint) *models.Media {
	return &models.Media{
		Title:           r.Title,
		Description:     r.Description,
		MediaType:       r.MediaType,
		ReleaseYear:     r.ReleaseYear,
		AgeRestriction:  r.AgeRestriction,
		Genres:          r.Genres,
		PosterPath:      r.PosterPath,
		CreatedByUserID: createdBy,
	}
}

// CreateMedia godoc
// @Summary Create a media item
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param media body MediaRequest true "Media item"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Router /media [post]
func (h *MediaHandler) CreateMedia(c *fiber.Ctx) error {
	var req MediaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	media := req.toModel(CurrentUserID(c))
	if !h.service.CreateMedia(c.UserContext(), media) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Media item is invalid")
	}

	h.logger.WithFields(logrus.Fields{
		"media_id": media.ID,
		"title":    media.Title,
	}).Info("Media created")
	return utils.SuccessResponse(c, fiber.StatusCreated, "Media created", media)
}

// GetAllMedia godoc
// @Summary List the full media catalog
// @Tags media
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Router /media [get]
func (h *MediaHandler) GetAllMedia(c *fiber.Ctx) error {
	media := h.service.GetAllMedia(c.UserContext())
	return utils.SuccessResponse(c, fiber.StatusOK, "Media catalog", media)
}

// GetDetailedMedia godoc
// @Summary Get one media item with ratings, summary and favorite info
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /media/{id} [get]
func (h *MediaHandler) GetDetailedMedia(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id")
	}

	details := h.service.GetDetailedMedia(c.UserContext(), id, CurrentUserID(c))
	if details == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Media not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Media details", details)
}

// UpdateMedia godoc
// @Summary Replace a media item
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Param media body MediaRequest true "Media item"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Router /media/{id} [put]
func (h *MediaHandler) UpdateMedia(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id")
	}

	var req MediaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	media := req.toModel(CurrentUserID(c))
	media.ID = id
	if !h.service.UpdateMedia(c.UserContext(), media) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Media update rejected")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Media updated", media)
}

// DeleteMedia godoc
// @Summary Delete a media item
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id")
	}
	if !h.service.DeleteMedia(c.UserContext(), id) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Media not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Media deleted", nil)
}

// SearchMedia godoc
// @Summary Search the catalog with filters and sorting
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param title query string false "Title substring (case-insensitive)"
// @Param media_type query string false "Exact media type"
// @Param genre query string false "Genre membership"
// @Param release_year query int false "Exact release year"
// @Param age_restriction query string false "Exact age restriction"
// @Param min_rating query number false "Minimum average rating"
// @Param sort_by query string false "Sort field (title, year, score)" default(title)
// @Param order query string false "Sort direction (asc, desc)" default(asc)
// @Success 200 {object} utils.StandardResponse
// @Router /media/search [get]
func (h *MediaHandler) SearchMedia(c *fiber.Ctx) error {
	criteria := services.MediaSearchCriteria{
		SortField:     services.SortField(c.Query("sort_by")),
		SortDirection: services.SortDirection(c.Query("order")),
	}
	if v := c.Query("title"); v != "" {
		criteria.TitleQuery = &v
	}
	if v := c.Query("media_type"); v != "" {
		criteria.MediaType = &v
	}
	if v := c.Query("genre"); v != "" {
		criteria.Genre = &v
	}
	if v := c.Query("age_restriction"); v != "" {
		criteria.AgeRestriction = &v
	}
	if v := c.Query("release_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid release_year")
		}
		criteria.ReleaseYear = &year
	}
	if v := c.Query("min_rating"); v != "" {
		minRating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid min_rating")
		}
		criteria.MinimumRating = &minRating
	}

	results := h.service.SearchMedia(c.UserContext(), criteria, CurrentUserID(c))
	return utils.SuccessResponse(c, fiber.StatusOK, "Search results", results)
}

// RecommendMedia godoc
// @Summary Personalized recommendations for the current user
// @Tags media
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Router /media/recommendations [get]
func (h *MediaHandler) RecommendMedia(c *fiber.Ctx) error {
	results := h.service.RecommendMedia(c.UserContext(), CurrentUserID(c))
	return utils.SuccessResponse(c, fiber.StatusOK, "Recommendations", results)
}

// AddFavorite godoc
// @Summary Mark a media item as favorite
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 409 {object} utils.StandardResponse
// @Router /media/{id}/favorite [post]
func (h *MediaHandler) AddFavorite(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id")
	}
	if !h.service.AddFavorite(c.UserContext(), id, CurrentUserID(c)) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Favorite rejected")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Favorite added", nil)
}

// RemoveFavorite godoc
// @Summary Remove a favorite mark
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /media/{id}/favorite [delete]
func (h *MediaHandler) RemoveFavorite(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id")
	}
	if !h.service.RemoveFavorite(c.UserContext(), id, CurrentUserID(c)) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Favorite not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Favorite removed", nil)
}
