package controller

import (
	"solosolver-be/internal/dto"
	"solosolver-be/internal/pkg/serverutils"
	"solosolver-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInteractionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type interactionController struct {
	service service.IInteractionService
}

func NewInteractionController(service service.IInteractionService) IInteractionController {
	return &interactionController{service: service}
}

func (c *interactionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interaction/v1")
	h.Get("", c.List)
}

func (c *interactionController) List(ctx *fiber.Ctx) error {
	var req dto.ListInteractionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid query", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list interactions", res))
}
