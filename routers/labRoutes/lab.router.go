package labRoutes

import (
	labControllers "netlab/controllers/lab"
	"netlab/middleware"
	labValidators "netlab/validators/lab"

	"github.com/gofiber/fiber/v2"
)

// SetupLabRoutes wires the lab authoring and reading routes
func SetupLabRoutes(app *fiber.App, ctrl *labControllers.LabController) {
	labGroup := app.Group("/lab")

	labGroup.Post("/create", middleware.JWTMiddleware, labValidators.CreateLab(), ctrl.CreateLab)
	labGroup.Get("/list", middleware.JWTMiddleware, ctrl.ListLabs)
	labGroup.Get("/:id", middleware.JWTMiddleware, labValidators.LabID(), ctrl.GetLab)
	labGroup.Put("/:id", middleware.JWTMiddleware, labValidators.LabID(), labValidators.UpdateLab(), ctrl.UpdateLab)
	labGroup.Delete("/:id", middleware.JWTMiddleware, labValidators.LabID(), ctrl.DeleteLab)
}
