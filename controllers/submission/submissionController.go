package controllers

import (
	"os"

	"netlab/config"
	"netlab/middleware"
	"netlab/models"
	labModels "netlab/models/lab"
	"netlab/services"
	"netlab/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmissionController exposes the student submission and instructor
// grading surface
type SubmissionController struct {
	Db      *gorm.DB
	Service *services.SubmissionService
}

func NewSubmissionController(db *gorm.DB, service *services.SubmissionService) *SubmissionController {
	return &SubmissionController{Db: db, Service: service}
}

func (ctrl *SubmissionController) authorize(c *fiber.Ctx, roles ...string) (*models.User, error) {
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

// SubmitLab stores the session user's submission for a lab, with any
// uploaded files attached
func (ctrl *SubmissionController) SubmitLab(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c)
	if user == nil {
		return respErr
	}

	labID := c.Locals("labID").(uint)
	reqData, ok := c.Locals("validatedSubmit").(*struct {
		ClassroomID            uint
		ProjectID              uint
		CompletedTasks         []string
		CompletedVerifications []string
		CompletedSections      []string
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var files []services.SubmittedFile
	var savedPaths []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["files"] {
			path, err := utils.SaveUploadedFile(fh, config.AppConfig.UploadDir)
			if err != nil {
				for _, p := range savedPaths {
					os.Remove(p)
				}
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
			}
			savedPaths = append(savedPaths, path)
			files = append(files, services.SubmittedFile{
				URL:          utils.GetFileURL(path),
				OriginalName: fh.Filename,
			})
		}
	}

	sub, err := ctrl.Service.Submit(&services.SubmitInput{
		UserID:                 user.ID,
		ClassroomID:            reqData.ClassroomID,
		ProjectID:              reqData.ProjectID,
		LabID:                  labID,
		CompletedTasks:         reqData.CompletedTasks,
		CompletedVerifications: reqData.CompletedVerifications,
		CompletedSections:      reqData.CompletedSections,
		Files:                  files,
	})
	if err != nil {
		// the submission was rejected, drop the files stored for it
		for _, p := range savedPaths {
			os.Remove(p)
		}
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lab submitted successfully!", sub)
}

// GradeSubmission stores grade and feedback on a submission and notifies
// the student
func (ctrl *SubmissionController) GradeSubmission(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c, "INSTRUCTOR", "ADMIN")
	if user == nil {
		return respErr
	}

	submissionID := c.Locals("submissionID").(uint)
	reqData, ok := c.Locals("validatedGrade").(*struct {
		Grade    *float64 `json:"grade"`
		Feedback string   `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	sub, err := ctrl.Service.GradeByID(submissionID, *reqData.Grade, reqData.Feedback)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	// notify the student and any review tooling, off the request path
	var student models.User
	if err := ctrl.Db.First(&student, sub.UserID).Error; err == nil {
		var l labModels.Lab
		ctrl.Db.Select("title").First(&l, sub.LabID)
		go utils.SendSubmissionGradedEmail(student.Email, student.Name, l.Title, *reqData.Grade, reqData.Feedback)
	}
	go utils.NotifySubmissionGraded(sub)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", sub)
}

// ClassroomSubmissions returns every submission of a classroom's projects
// plus the referenced labs for instructor review
func (ctrl *SubmissionController) ClassroomSubmissions(c *fiber.Ctx) error {
	user, respErr := ctrl.authorize(c, "INSTRUCTOR", "ADMIN")
	if user == nil {
		return respErr
	}

	classroomID := c.Locals("classroomID").(uint)
	studentID, _ := c.Locals("studentID").(*uint)

	result, err := ctrl.Service.ClassroomLabSubmissions(classroomID, studentID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", result)
}
