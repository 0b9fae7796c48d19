package handlers

import (
	"mediarate-backend/internal/models"
	"mediarate-backend/internal/services"
	"mediarate-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RatingHandler struct {
	service services.RatingService
	logger  *logrus.Logger
}

func NewRatingHandler(service services.RatingService, logger *logrus.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		logger:  logger,
	}
}

// CreateRating godoc
// @Summary Rate a media item
// @Description Creates the caller's rating for a media item. Each user can rate a media item once.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rating body RatingRequest true "Rating"
// @Success 201 {object} utils.StandardResponse
// @Failure 409 {object} utils.StandardResponse
// @Router /ratings [post]
func (h *RatingHandler) CreateRating(c *fiber.Ctx) error {
	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	rating := h.service.CreateRating(c.UserContext(), &models.Rating{
		MediaID:   req.MediaID,
		UserID:    CurrentUserID(c),
		StarValue: req.StarValue,
		Comment:   req.Comment,
	})
	if rating == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Rating rejected")
	}

	h.logger.WithFields(logrus.Fields{
		"rating_id": rating.ID,
		"media_id":  rating.MediaID,
	}).Info("Rating created")
	return utils.SuccessResponse(c, fiber.StatusCreated, "Rating created", rating)
}

// GetRatingsForMedia godoc
// @Summary List all ratings of a media item
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param mediaId path int true "Media ID"
// @Success 200 {object} utils.StandardResponse
// @Router /ratings/media/{mediaId} [get]
func (h *RatingHandler) GetRatingsForMedia(c *fiber.Ctx) error {
	mediaID, ok := parseIDParam(c, "mediaId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id")
	}
	ratings := h.service.GetRatingsForMedia(c.UserContext(), mediaID)
	return utils.SuccessResponse(c, fiber.StatusOK, "Ratings", ratings)
}

// GetOwnRatingForMedia godoc
// @Summary Get the caller's rating of a media item
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param mediaId path int true "Media ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /ratings/media/{mediaId}/mine [get]
func (h *RatingHandler) GetOwnRatingForMedia(c *fiber.Ctx) error {
	mediaID, ok := parseIDParam(c, "mediaId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id")
	}
	rating := h.service.GetUserRatingForMedia(c.UserContext(), mediaID, CurrentUserID(c))
	if rating == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Rating not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Rating", rating)
}

// UpdateRating godoc
// @Summary Edit the caller's rating
// @Description Star and comment edits for the owning user. A comment change resets the moderation flag.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Param rating body RatingUpdateRequest true "Changes"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Router /ratings/{id} [put]
func (h *RatingHandler) UpdateRating(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid rating id")
	}

	var req RatingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updated := h.service.UpdateRating(c.UserContext(), &models.Rating{
		ID:        id,
		StarValue: req.StarValue,
		Comment:   req.Comment,
	}, CurrentUserID(c))
	if !updated {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Rating update rejected")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Rating updated", nil)
}

// DeleteRating godoc
// @Summary Delete the caller's rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Router /ratings/{id} [delete]
func (h *RatingHandler) DeleteRating(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid rating id")
	}
	if !h.service.DeleteRating(c.UserContext(), id, CurrentUserID(c)) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Rating delete rejected")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Rating deleted", nil)
}

// ConfirmComment godoc
// @Summary Confirm the caller's rating comment
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Router /ratings/{id}/confirm [post]
func (h *RatingHandler) ConfirmComment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid rating id")
	}
	if !h.service.ConfirmComment(c.UserContext(), id, CurrentUserID(c)) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Comment confirmation rejected")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Comment confirmed", nil)
}

// LikeRating godoc
// @Summary Like another user's rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 409 {object} utils.StandardResponse
// @Router /ratings/{id}/like [post]
func (h *RatingHandler) LikeRating(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid rating id")
	}
	if !h.service.LikeRating(c.UserContext(), id, CurrentUserID(c)) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Like rejected")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Rating liked", nil)
}

// UnlikeRating godoc
// @Summary Remove a like from a rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 409 {object} utils.StandardResponse
// @Router /ratings/{id}/like [delete]
func (h *RatingHandler) UnlikeRating(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid rating id")
	}
	if !h.service.UnlikeRating(c.UserContext(), id, CurrentUserID(c)) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Unlike rejected")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Like removed", nil)
}
