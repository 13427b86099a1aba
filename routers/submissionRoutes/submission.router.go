package submissionRoutes

import (
	submissionControllers "netlab/controllers/submission"
	"netlab/middleware"
	labValidators "netlab/validators/lab"
	submissionValidators "netlab/validators/submission"

	"github.com/gofiber/fiber/v2"
)

// SetupSubmissionRoutes wires student submission and instructor review
// routes
func SetupSubmissionRoutes(app *fiber.App, ctrl *submissionControllers.SubmissionController) {
	app.Post("/lab/:id/submit", middleware.JWTMiddleware, labValidators.LabID(), submissionValidators.SubmitLab(), ctrl.SubmitLab)
	app.Put("/submission/:id/grade", middleware.JWTMiddleware, submissionValidators.GradeSubmission(), ctrl.GradeSubmission)
	app.Get("/classroom/:id/submissions", middleware.JWTMiddleware, submissionValidators.ClassroomSubmissions(), ctrl.ClassroomSubmissions)
}
