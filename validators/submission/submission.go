package submissionValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"netlab/middleware"

	"github.com/gofiber/fiber/v2"
)

// formList reads a repeated multipart field; a single JSON array value is
// accepted too since some clients send the arrays encoded
func formList(c *fiber.Ctx, key string) []string {
	var values []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		values = form.Value[key]
	} else if v := c.FormValue(key); v != "" {
		values = []string{v}
	}

	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var arr []string
		if json.Unmarshal([]byte(values[0]), &arr) == nil {
			return arr
		}
	}
	return values
}

// SubmitLab validates the multipart submission form
func SubmitLab() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassroomID            uint
			ProjectID              uint
			CompletedTasks         []string
			CompletedVerifications []string
			CompletedSections      []string
		})

		errs := make(map[string]string)

		classroomID, err := strconv.Atoi(c.FormValue("classroomId"))
		if err != nil || classroomID < 1 {
			errs["classroomId"] = "Classroom id is required!"
		} else {
			reqData.ClassroomID = uint(classroomID)
		}

		projectID, err := strconv.Atoi(c.FormValue("projectId"))
		if err != nil || projectID < 1 {
			errs["projectId"] = "Project id is required!"
		} else {
			reqData.ProjectID = uint(projectID)
		}

		if len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		reqData.CompletedTasks = formList(c, "completedTasks")
		reqData.CompletedVerifications = formList(c, "completedVerifications")
		reqData.CompletedSections = formList(c, "completedSections")

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}

// GradeSubmission validates the grading payload and the :id parameter
func GradeSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid submission id!", nil)
		}

		reqData := new(struct {
			Grade    *float64 `json:"grade"`
			Feedback string   `json:"feedback"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errs := make(map[string]string)
		if reqData.Grade == nil {
			errs["grade"] = "Grade is required!"
		} else if *reqData.Grade < 0 || *reqData.Grade > 100 {
			errs["grade"] = "Grade must be between 0 and 100!"
		}
		if len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("submissionID", uint(id))
		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}

// ClassroomSubmissions validates the :id parameter and the optional
// studentId query filter
func ClassroomSubmissions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid classroom id!", nil)
		}
		c.Locals("classroomID", uint(id))

		if raw := c.Query("studentId"); raw != "" {
			studentID, err := strconv.Atoi(raw)
			if err != nil || studentID < 1 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
			}
			sid := uint(studentID)
			c.Locals("studentID", &sid)
		}

		return c.Next()
	}
}
