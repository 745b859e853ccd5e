package controller

import (
	"errors"

	"solosolver-be/internal/dto"
	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/pkg/serverutils"
	"solosolver-be/internal/service"
	"solosolver-be/pkg/complaint/pipeline"

	"github.com/gofiber/fiber/v2"
)

const missingComplaintFields = "Missing userId or complaintText"

type IComplaintController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
}

type complaintController struct {
	service service.IComplaintService
	logger  logger.ILogger
}

func NewComplaintController(service service.IComplaintService, log logger.ILogger) IComplaintController {
	return &complaintController{service: service, logger: log}
}

func (c *complaintController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/complaint/v1")
	h.Post("/analyze", c.Analyze)
}

// Analyze answers 200 for success and fallback, 400 for missing fields and
// 500 with a customer-safe apology for anything else.
func (c *complaintController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeComplaintRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.logger.Warn("HTTP", "Unparseable analyze body", map[string]interface{}{
			"error": err.Error(),
		})
		return c.failure(ctx)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		var vErr *serverutils.ValidationError
		if errors.As(err, &vErr) && (vErr.Field == "userId" || vErr.Field == "complaintText") {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorMessageResponse{Error: missingComplaintFields})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorMessageResponse{Error: err.Error()})
	}

	res, err := c.service.Analyze(ctx.UserContext(), &req)
	if errors.Is(err, service.ErrMissingComplaintFields) {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorMessageResponse{Error: missingComplaintFields})
	}
	if err != nil {
		c.logger.Error("HTTP", "Analyze failed", map[string]interface{}{
			"error": err.Error(),
		})
		return c.failure(ctx)
	}
	if res.Status == entity.InteractionStatusError {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.AnalyzeFailureResponse{
			Response: res.Response,
			Status:   entity.InteractionStatusError,
		})
	}

	return ctx.JSON(res)
}

func (c *complaintController) failure(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.AnalyzeFailureResponse{
		Response: pipeline.Apology,
		Status:   entity.InteractionStatusError,
	})
}
