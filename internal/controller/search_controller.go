package controller

import (
	"errors"

	"solosolver-be/internal/dto"
	"solosolver-be/internal/pkg/serverutils"
	"solosolver-be/internal/repository/contract"
	"solosolver-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	service service.ISearchService
}

func NewSearchController(service service.ISearchService) ISearchController {
	return &searchController{service: service}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transaction/v1")
	h.Post("/search", c.Search)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchTransactionsRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorMessageResponse{Error: "invalid request body"})
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorMessageResponse{Error: err.Error()})
	}

	res, err := c.service.Search(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, contract.ErrStoreUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorMessageResponse{Error: contract.ErrStoreUnavailable.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorMessageResponse{Error: "Internal server error"})
	}

	return ctx.JSON(res)
}
