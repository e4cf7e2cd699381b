package workorder

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/fieldstone/work-order-backend/internal/user"
)

// Handler exposes the order endpoints. All routes require an authenticated
// session; the JWT middleware is installed by the caller before registration.
type Handler struct {
	service *Service
	log     *logrus.Logger
}

func NewHandler(service *Service, log *logrus.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.listOrders)
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders/:id", h.getOrder)
	// support both PATCH and PUT; the handler accepts partial payloads either way
	app.Patch("/api/v1/orders/:id", h.updateOrder)
	app.Put("/api/v1/orders/:id", h.updateOrder)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	const op = "workorder.Handler.listOrders"

	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	params := ListParams{
		Page:     page,
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	result, err := h.service.List(params, actor)
	if err != nil {
		h.log.WithField("operation", op).WithError(err).Error("unable to list orders")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(result)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	const op = "workorder.Handler.getOrder"

	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.service.Get(c.Params("id"), actor)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "work order not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
		default:
			h.log.WithField("operation", op).WithError(err).Error("unable to fetch order")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(ord)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	const op = "workorder.Handler.createOrder"

	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(CreateOrderInput)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(*payload, actor)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation failed",
				"errors":  ve.Fields,
			})
		}
		h.log.WithField("operation", op).WithError(err).Error("unable to create order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateOrder(c *fiber.Ctx) error {
	const op = "workorder.Handler.updateOrder"

	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(UpdateOrderInput)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(c.Params("id"), *payload, actor)
	if err != nil {
		var ve *ValidationError
		switch {
		case err == ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "work order not found"})
		case err == ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation failed",
				"errors":  ve.Fields,
			})
		default:
			h.log.WithField("operation", op).WithError(err).Error("unable to update order")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(updated)
}
