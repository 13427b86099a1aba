package controllers

import (
	"netlab/middleware"
	"netlab/models"
	"netlab/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LabController exposes the authoring surface of the lab engine
type LabController struct {
	Db      *gorm.DB
	Service *services.LabService
}

func NewLabController(db *gorm.DB, service *services.LabService) *LabController {
	return &LabController{Db: db, Service: service}
}

// authorize resolves the session user and optionally enforces a role; on
// failure the response is already written and the returned user is nil
func (ctrl *LabController) authorize(c *fiber.Ctx, roles ...string) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := ctrl.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if len(roles) > 0 {
		for _, r := range roles {
			if user.Role == r {
				return &user, nil
			}
		}
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	return &user, nil
}

// CreateLab creates a full lab aggregate
func (ctrl *LabController) CreateLab(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c, "INSTRUCTOR", "ADMIN")
	if user == nil {
		return respErr
	}

	draft, ok := c.Locals("validatedLabDraft").(*services.LabDraft)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	created, err := ctrl.Service.Create(user.ID, draft)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lab created successfully!", created)
}

// GetLab returns the complete aggregate
func (ctrl *LabController) GetLab(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c)
	if user == nil {
		return respErr
	}

	labID := c.Locals("labID").(uint)

	l, err := ctrl.Service.GetByID(labID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lab fetched successfully!", l)
}

// ListLabs returns every lab as a full aggregate
func (ctrl *LabController) ListLabs(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c)
	if user == nil {
		return respErr
	}

	labs, err := ctrl.Service.List()
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Labs fetched successfully!", fiber.Map{
		"labs": labs,
	})
}

// UpdateLab replaces every child collection present in the draft
func (ctrl *LabController) UpdateLab(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c, "INSTRUCTOR", "ADMIN")
	if user == nil {
		return respErr
	}

	labID := c.Locals("labID").(uint)
	draft, ok := c.Locals("validatedLabDraft").(*services.LabDraft)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctrl.Service.Update(labID, draft); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lab updated successfully!", nil)
}

// DeleteLab removes the whole aggregate
func (ctrl *LabController) DeleteLab(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c, "INSTRUCTOR", "ADMIN")
	if user == nil {
		return respErr
	}

	labID := c.Locals("labID").(uint)

	if err := ctrl.Service.Delete(labID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
