package handler

import (
	"time"

	"github.com/codewithlokesh/intrvu-backend/internal/dto"
	"github.com/codewithlokesh/intrvu-backend/internal/middleware"
	"github.com/codewithlokesh/intrvu-backend/internal/response"
	"github.com/codewithlokesh/intrvu-backend/internal/usecase"
	"github.com/codewithlokesh/intrvu-backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	api := app.Group("/api", auth)
	// the two LLM-backed routes get their own tighter limit
	api.Post("/interviews", middleware.RateLimiter(5, 1*time.Minute), h.Create)
	api.Post("/interviews/:id/feedback", middleware.RateLimiter(5, 1*time.Minute), h.GenerateFeedback)
	api.Get("/interviews", h.History)
	api.Get("/interviews/:id", h.Get)
	api.Get("/dashboard", h.Dashboard)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	var req dto.InterviewSetupRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	result, err := h.uc.CreateSession(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: publicMessage(err),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interview session created",
		Data:    result,
	})
}

func (h *InterviewHandler) GenerateFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	session, err := h.uc.GenerateFeedback(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Transcript)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: publicMessage(err),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Interview feedback generated",
		Data:    session,
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	session, err := h.uc.GetSession(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: "Interview not found or unauthorized access",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Interview fetched successfully",
		Data:    session,
	})
}

func (h *InterviewHandler) History(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 10)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	sessions, total, err := h.uc.History(middleware.UserID(c), (page-1)*pageSize, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: publicMessage(err),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Interview sessions fetched successfully",
		Data:       sessions,
		Pagination: response.NewPagination(page, pageSize, len(sessions), total),
	})
}

func (h *InterviewHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.uc.Dashboard(middleware.UserID(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: publicMessage(err),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Dashboard stats fetched successfully",
		Data:    stats,
	})
}
