package handlers

import (
	"strconv"

	"mediarate-backend/internal/services"
	"mediarate-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	service services.ProfileService
	logger  *logrus.Logger
}

func NewProfileHandler(service services.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// GetProfile godoc
// @Summary The caller's derived profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile := h.service.BuildProfile(c.UserContext(), CurrentUserID(c))
	if profile == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile", profile)
}

// GetRatingHistory godoc
// @Summary The caller's full rating history
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Router /profile/history [get]
func (h *ProfileHandler) GetRatingHistory(c *fiber.Ctx) error {
	history := h.service.RatingHistory(c.UserContext(), CurrentUserID(c))
	return utils.SuccessResponse(c, fiber.StatusOK, "Rating history", history)
}

// GetFavorites godoc
// @Summary The caller's favorite media with rating summaries
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Router /profile/favorites [get]
func (h *ProfileHandler) GetFavorites(c *fiber.Ctx) error {
	favorites := h.service.FavoriteMedia(c.UserContext(), CurrentUserID(c))
	return utils.SuccessResponse(c, fiber.StatusOK, "Favorites", favorites)
}

// GetLeaderboard godoc
// @Summary Users ranked by submitted ratings
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {object} utils.StandardResponse
// @Router /leaderboard [get]
func (h *ProfileHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	entries := h.service.Leaderboard(c.UserContext(), limit)
	return utils.SuccessResponse(c, fiber.StatusOK, "Leaderboard", entries)
}
