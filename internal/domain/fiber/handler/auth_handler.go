package handler

import (
	"time"

	"github.com/codewithlokesh/intrvu-backend/internal/dto"
	"github.com/codewithlokesh/intrvu-backend/internal/middleware"
	"github.com/codewithlokesh/intrvu-backend/internal/usecase"
	"github.com/codewithlokesh/intrvu-backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	auth := app.Group("/api/auth", middleware.RateLimiter(10, 1*time.Minute))
	auth.Post("/signup", h.Signup)
	auth.Post("/verify", h.Verify)
	auth.Post("/login", h.Login)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	user, err := h.uc.Signup(c.UserContext(), req.FullName, req.Email, req.Password)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: publicMessage(err),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Account created. Verification email sent",
		Data:    user,
	})
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	if err := h.uc.Verify(c.UserContext(), req.Email, req.VerifyCode); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: publicMessage(err),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Account verified",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	token, user, err := h.uc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: publicMessage(err),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Logged in successfully",
		Data:    dto.LoginResult{Token: token, User: user},
	})
}
