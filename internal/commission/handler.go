package commission

import (
	"bytes"
	"fmt"
	"strconv"

	"shinepos-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ----------------------------------------
// COMMISSION LOG CRUD
// ----------------------------------------

// POST /api/commission-logs
func CreateCommissionLogHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}

		log, err := svc.Create(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(log)
	}
}

// GET /api/commission-logs?page=1&limit=10
func ListCommissionLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", DefaultPage)
		limit := c.QueryInt("limit", DefaultLimit)

		res, err := svc.List(c.UserContext(), page, limit)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /api/commission-logs/:id
func GetCommissionLogHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		log, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(log)
	}
}

// PUT /api/commission-logs/:id
func UpdateCommissionLogHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var body UpdateInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}

		log, err := svc.Update(c.UserContext(), id, body)
		if err != nil {
			return err
		}
		return c.JSON(log)
	}
}

// DELETE /api/commission-logs/:id
func DeleteCommissionLogHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Commission log deleted successfully"})
	}
}

// ----------------------------------------
// SALES PERSON EARNINGS & PAYOUT
// ----------------------------------------

// GET /api/commission-logs/salesperson/:salesPersonId
func SalesPersonCommissionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "salesPersonId")
		if err != nil {
			return err
		}

		res, err := svc.SalesPersonCommissions(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /api/commission-logs/salesperson/:salesPersonId/export
func ExportSalesPersonCommissionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "salesPersonId")
		if err != nil {
			return err
		}

		res, err := svc.SalesPersonCommissions(c.UserContext(), id)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := WriteStatement(&buf, res); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Attachment(fmt.Sprintf("commissions-%d.xlsx", id))
		return c.Send(buf.Bytes())
	}
}

// PATCH /api/commission-logs/:id/mark-paid
func MarkCommissionPaidHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		log, err := svc.MarkPaid(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":       "Commission marked as paid",
			"commissionLog": log,
		})
	}
}

// POST /api/commission-logs/subscribe-restaurant
func SubscribeRestaurantHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SubscribeInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}

		res, err := svc.SubscribeRestaurant(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// Register mounts the commission routes on r. read guards listing and
// creation, admin guards changes to existing logs.
func Register(r fiber.Router, svc *Service, read, admin fiber.Handler) {
	g := r.Group("/commission-logs")

	g.Post("/subscribe-restaurant", read, SubscribeRestaurantHandler(svc))
	g.Get("/salesperson/:salesPersonId", read, SalesPersonCommissionsHandler(svc))
	g.Get("/salesperson/:salesPersonId/export", read, ExportSalesPersonCommissionsHandler(svc))

	g.Post("/", read, CreateCommissionLogHandler(svc))
	g.Get("/", read, ListCommissionLogsHandler(svc))
	g.Get("/:id", read, GetCommissionLogHandler(svc))
	g.Put("/:id", admin, UpdateCommissionLogHandler(svc))
	g.Delete("/:id", admin, DeleteCommissionLogHandler(svc))
	g.Patch("/:id/mark-paid", admin, MarkCommissionPaidHandler(svc))
}

func paramID(c *fiber.Ctx, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}
