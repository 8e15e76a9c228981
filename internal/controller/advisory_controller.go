package controller

import (
	"agri-advisory-be/internal/dto"
	"agri-advisory-be/internal/pkg/serverutils"
	"agri-advisory-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdvisoryController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
	TestIntent(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type advisoryController struct {
	advisoryService service.IAdvisoryService
	statsService    service.IStatsService
	ready           func() bool
}

// NewAdvisoryController wires the HTTP surface. The ready callback
// reports whether the advisory pipeline finished initialization;
// requests arriving earlier get a 503.
func NewAdvisoryController(advisoryService service.IAdvisoryService, statsService service.IStatsService, ready func() bool) IAdvisoryController {
	return &advisoryController{
		advisoryService: advisoryService,
		statsService:    statsService,
		ready:           ready,
	}
}

func (c *advisoryController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
	r.Get("/stats", c.Stats)
	r.Post("/query", c.Query)
	r.Post("/test-intent", c.TestIntent)
}

func (c *advisoryController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.RootResponse{
		Status:  "healthy",
		Message: "Agriculture Advisory API is running",
		Version: "1.0.0",
	})
}

func (c *advisoryController) Query(ctx *fiber.Ctx) error {
	if !c.ready() {
		return serverutils.NewAppError(fiber.StatusServiceUnavailable, "Agent not initialized", nil)
	}

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisoryService.Query(ctx.Context(), &req)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusInternalServerError, "Failed to process query", err)
	}

	return ctx.JSON(res)
}

func (c *advisoryController) TestIntent(ctx *fiber.Ctx) error {
	if !c.ready() {
		return serverutils.NewAppError(fiber.StatusServiceUnavailable, "Agent not initialized", nil)
	}

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisoryService.TestIntent(ctx.Context(), &req)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusInternalServerError, "Failed to detect intent", err)
	}

	return ctx.JSON(res)
}

func (c *advisoryController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.statsService.Health(ctx.Context(), c.ready()))
}

func (c *advisoryController) Stats(ctx *fiber.Ctx) error {
	if !c.ready() {
		return serverutils.NewAppError(fiber.StatusServiceUnavailable, "System not initialized", nil)
	}

	res, err := c.statsService.Stats(ctx.Context())
	if err != nil {
		return serverutils.NewAppError(fiber.StatusInternalServerError, "Failed to collect stats", err)
	}

	return ctx.JSON(res)
}
