package labValidator

import (
	"fmt"

	"netlab/middleware"
	"netlab/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validationMessages flattens validator.v10 errors into the field map the
// response envelope carries
func validationMessages(err error) map[string]string {
	errs := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errs[fe.Namespace()] = fmt.Sprintf("Failed validation: %s", fe.Tag())
		}
	} else {
		errs["body"] = "Invalid request body!"
	}
	return errs
}

func parseDraft(c *fiber.Ctx) (*services.LabDraft, error) {
	draft := new(services.LabDraft)
	if err := c.BodyParser(draft); err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(draft); err != nil {
		return nil, middleware.ValidationErrorResponse(c, validationMessages(err))
	}
	return draft, nil
}

// CreateLab validates a full authoring draft; a new lab must bring its
// environment, topology and guide along
func CreateLab() fiber.Handler {
	return func(c *fiber.Ctx) error {
		draft, err := parseDraft(c)
		if draft == nil {
			return err
		}

		errs := make(map[string]string)
		if draft.Environment == nil {
			errs["environment"] = "Environment is required!"
		} else if draft.Environment.Topology == nil {
			errs["environment.topology"] = "Topology is required!"
		}
		if draft.Guide == nil {
			errs["guide"] = "Guide is required!"
		}
		if len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedLabDraft", draft)
		return c.Next()
	}
}

// UpdateLab validates a replace draft; child sections are optional and
// absent ones are left untouched by the engine
func UpdateLab() fiber.Handler {
	return func(c *fiber.Ctx) error {
		draft, err := parseDraft(c)
		if draft == nil {
			return err
		}
		c.Locals("validatedLabDraft", draft)
		return c.Next()
	}
}

// LabID validates the :id path parameter
func LabID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lab id!", nil)
		}
		c.Locals("labID", uint(id))
		return c.Next()
	}
}
