package handlers

import (
	"strings"

	"mediarate-backend/internal/services"
	"mediarate-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	service services.UserService
	logger  *logrus.Logger
}

func NewUserHandler(service services.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body RegisterRequest true "Credentials"
// @Success 201 {object} utils.StandardResponse
// @Failure 409 {object} utils.StandardResponse
// @Router /auth/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !h.service.Register(c.UserContext(), req.Username, req.Password) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Registration rejected")
	}

	h.logger.WithField("username", req.Username).Info("User registered")
	return utils.SuccessResponse(c, fiber.StatusCreated, "User registered", nil)
}

// Login godoc
// @Summary Log in and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Router /auth/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	token := h.service.Login(c.UserContext(), req.Username, req.Password)
	if token == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Logged in", fiber.Map{"token": token})
}

// Logout godoc
// @Summary Invalidate the current session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Router /auth/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	h.service.Logout(token)
	return utils.SuccessResponse(c, fiber.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary The currently authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse
// @Router /auth/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	user := h.service.GetUserByToken(c.UserContext(), token)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Current user", user)
}
