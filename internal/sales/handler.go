package sales

import (
	"strconv"
	"strings"

	"shinepos-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateSalesPersonRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commissionRate" validate:"gte=0,lte=100"`
	UserID         *uint   `json:"userId"`
}

type UpdateSalesPersonRequest struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	CommissionRate *float64 `json:"commissionRate" validate:"omitempty,gte=0,lte=100"`
}

type CreateRestaurantRequest struct {
	RestaurantName string `json:"restaurantName" validate:"required"`
	OwnerName      string `json:"ownerName"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	SalesPersonID  uint   `json:"salesPersonId" validate:"required"`
}

// ----------------------------------------
// SALES PEOPLE
// ----------------------------------------

// POST /api/sales-people
func CreateSalesPersonHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSalesPersonRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
		}

		sp := models.SalesPerson{
			UserID:         body.UserID,
			Name:           body.Name,
			Email:          body.Email,
			Phone:          strings.TrimSpace(body.Phone),
			CommissionRate: body.CommissionRate,
		}
		if err := db.WithContext(c.UserContext()).Create(&sp).Error; err != nil {
			return errors.Wrap(err, "create sales person")
		}
		return c.Status(fiber.StatusCreated).JSON(sp)
	}
}

// GET /api/sales-people
func ListSalesPeopleHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var out []models.SalesPerson
		if err := db.WithContext(c.UserContext()).Order("name ASC").Find(&out).Error; err != nil {
			return errors.Wrap(err, "list sales people")
		}
		if out == nil {
			out = []models.SalesPerson{}
		}
		return c.JSON(out)
	}
}

// GET /api/sales-people/:id
func GetSalesPersonHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var sp models.SalesPerson
		if err := db.WithContext(c.UserContext()).First(&sp, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "Sales person not found")
		}
		return c.JSON(sp)
	}
}

// PUT /api/sales-people/:id
// A new rate only applies to subscriptions made after the change; existing
// commission logs keep the rate they were created with.
func UpdateSalesPersonHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var body UpdateSalesPersonRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
		}

		var sp models.SalesPerson
		if err := db.WithContext(c.UserContext()).First(&sp, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "Sales person not found")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			sp.Name = name
		}
		if body.Phone != nil {
			sp.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.CommissionRate != nil {
			sp.CommissionRate = *body.CommissionRate
		}

		if err := db.WithContext(c.UserContext()).Save(&sp).Error; err != nil {
			return errors.Wrap(err, "update sales person")
		}
		return c.JSON(sp)
	}
}

// ----------------------------------------
// RESTAURANT REGISTRATIONS
// ----------------------------------------

// POST /api/restaurants
func CreateRestaurantHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRestaurantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.RestaurantName = strings.TrimSpace(body.RestaurantName)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
		}

		var sp models.SalesPerson
		if err := db.WithContext(c.UserContext()).First(&sp, "id = ?", body.SalesPersonID).Error; err != nil {
			return notFoundOr(err, "Sales person not found")
		}

		r := models.RestaurantRegistration{
			RestaurantName: body.RestaurantName,
			OwnerName:      strings.TrimSpace(body.OwnerName),
			Email:          strings.ToLower(strings.TrimSpace(body.Email)),
			Phone:          strings.TrimSpace(body.Phone),
			Address:        body.Address,
			SalesPersonID:  sp.ID,
			Status:         models.RegistrationPending,
		}
		if err := db.WithContext(c.UserContext()).Create(&r).Error; err != nil {
			return errors.Wrap(err, "create restaurant registration")
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// GET /api/restaurants?status=pending&sales_person_id=3
func ListRestaurantsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.WithContext(c.UserContext()).Model(&models.RestaurantRegistration{})

		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if spID := c.Query("sales_person_id"); spID != "" {
			id, err := strconv.ParseUint(spID, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid sales_person_id")
			}
			q = q.Where("sales_person_id = ?", id)
		}

		var out []models.RestaurantRegistration
		if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
			return errors.Wrap(err, "list restaurants")
		}
		if out == nil {
			out = []models.RestaurantRegistration{}
		}
		return c.JSON(out)
	}
}

// GET /api/restaurants/:id
func GetRestaurantHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var r models.RestaurantRegistration
		if err := db.WithContext(c.UserContext()).First(&r, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "Restaurant not found")
		}
		return c.JSON(r)
	}
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return err
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email"
	case "gte", "lte":
		return "commissionRate must be between 0 and 100"
	default:
		return "Invalid " + fe.Field()
	}
}
