package services

import (
	"errors"
	"path/filepath"
	"time"

	"netlab/models"
	labModels "netlab/models/lab"

	"gorm.io/gorm/clause"
	"gorm.io/gorm"
)

// SubmissionService manages the per-student submission lifecycle and the
// derived Progress/LabProgress aggregates
type SubmissionService struct {
	db        *gorm.DB
	uploadDir string
}

func NewSubmissionService(db *gorm.DB, uploadDir string) *SubmissionService {
	return &SubmissionService{db: db, uploadDir: uploadDir}
}

// SubmittedFile describes an upload already written to disk by the caller
type SubmittedFile struct {
	URL          string
	OriginalName string
}

type SubmitInput struct {
	UserID                 uint
	ClassroomID            uint
	ProjectID              uint
	LabID                  uint
	CompletedTasks         []string
	CompletedVerifications []string
	CompletedSections      []string
	Files                  []SubmittedFile
}

// ClassroomSubmissions is the instructor review payload: all submissions
// of a classroom's projects plus the labs they refer to
type ClassroomSubmissions struct {
	Submissions []models.LabSubmission `json:"submissions"`
	Labs        []labModels.Lab        `json:"labs"`
}

// Submit stores (or re-stores) the student's submission for a lab within a
// project. Resubmission increments the attempt counter via an atomic
// upsert and supersedes the previous files. All database work is one
// transaction; physical file deletion is deferred until after commit
// through the FileCleanup outbox and swept again by the scheduler.
func (s *SubmissionService) Submit(in *SubmitInput) (*models.LabSubmission, error) {
	if in.UserID == 0 || in.ProjectID == 0 || in.LabID == 0 {
		return nil, newValidationError("studentId, projectId and labId are required")
	}

	var result models.LabSubmission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.LabSubmission
		err := tx.Preload("Files").
			Where("user_id = ? AND project_id = ? AND lab_id = ?", in.UserID, in.ProjectID, in.LabID).
			First(&existing).Error
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if exists {
			var settings labModels.LabSettings
			err := tx.Where("lab_id = ?", in.LabID).First(&settings).Error
			if err == nil && settings.MaxAttemptSubmission != nil && existing.Attempt >= *settings.MaxAttemptSubmission {
				return ErrMaxAttemptsReached
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			// supersede the previous attempt's files; the unlink itself
			// happens after commit
			for _, f := range existing.Files {
				cleanup := models.FileCleanup{Path: filepath.Join(s.uploadDir, filepath.Base(f.URL))}
				if err := tx.Create(&cleanup).Error; err != nil {
					return err
				}
			}
			if len(existing.Files) > 0 {
				if err := tx.Where("submission_id = ?", existing.ID).Delete(&models.SubmissionFile{}).Error; err != nil {
					return err
				}
			}
		}

		now := time.Now()
		sub := models.LabSubmission{
			UserID:      in.UserID,
			ProjectID:   in.ProjectID,
			LabID:       in.LabID,
			ClassroomID: in.ClassroomID,
			Attempt:     1,
			Status:      models.SubmissionPending,
			SubmittedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "project_id"}, {Name: "lab_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"attempt":      gorm.Expr("attempt + 1"),
				"status":       models.SubmissionPending,
				"submitted_at": now,
				"updated_at":   now,
			}),
		}).Create(&sub).Error; err != nil {
			return err
		}

		// re-read through the unique key: on the conflict path the
		// generated id of the insert attempt is not the stored row's
		if err := tx.Where("user_id = ? AND project_id = ? AND lab_id = ?", in.UserID, in.ProjectID, in.LabID).
			First(&result).Error; err != nil {
			return err
		}

		if len(in.Files) > 0 {
			files := make([]models.SubmissionFile, len(in.Files))
			for i, f := range in.Files {
				files[i] = models.SubmissionFile{
					SubmissionID: result.ID,
					URL:          f.URL,
					OriginalName: f.OriginalName,
				}
			}
			if err := tx.Create(&files).Error; err != nil {
				return err
			}
		}

		prog, err := ensureProgress(tx, in.UserID, in.ProjectID)
		if err != nil {
			return err
		}
		if err := upsertLabProgress(tx, prog.ID, in.LabID, in); err != nil {
			return err
		}
		if err := recomputeProjectProgress(tx, prog.ID, in.ProjectID); err != nil {
			return err
		}

		return tx.Preload("Files").First(&result, result.ID).Error
	})
	if err != nil {
		return nil, mapStorageErr(err)
	}

	SweepFileCleanups(s.db)

	return &result, nil
}

// GradeByID marks a submission graded and stores grade and feedback. It is
// an administrative overlay: attempt count and progress are untouched.
func (s *SubmissionService) GradeByID(id uint, grade float64, feedback string) (*models.LabSubmission, error) {
	var sub models.LabSubmission
	if err := s.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapStorageErr(err)
	}

	if err := s.db.Model(&sub).Updates(map[string]interface{}{
		"status":   models.SubmissionGraded,
		"grade":    grade,
		"feedback": feedback,
	}).Error; err != nil {
		return nil, mapStorageErr(err)
	}

	if err := s.db.Preload("Files").First(&sub, id).Error; err != nil {
		return nil, mapStorageErr(err)
	}
	return &sub, nil
}

// ClassroomLabSubmissions fans out from a classroom to every submission in
// its projects (optionally one student's) plus the referenced labs, fully
// loaded, for instructor review tooling
func (s *SubmissionService) ClassroomLabSubmissions(classroomID uint, studentID *uint) (*ClassroomSubmissions, error) {
	var projectIDs []uint
	if err := s.db.Model(&models.Project{}).
		Where("classroom_id = ? AND is_deleted = ?", classroomID, false).
		Pluck("id", &projectIDs).Error; err != nil {
		return nil, mapStorageErr(err)
	}

	out := &ClassroomSubmissions{
		Submissions: []models.LabSubmission{},
		Labs:        []labModels.Lab{},
	}
	if len(projectIDs) == 0 {
		return out, nil
	}

	q := s.db.Preload("Files").Where("project_id IN ?", projectIDs)
	if studentID != nil {
		q = q.Where("user_id = ?", *studentID)
	}
	if err := q.Order("submitted_at desc").Find(&out.Submissions).Error; err != nil {
		return nil, mapStorageErr(err)
	}

	var labIDs []uint
	if err := s.db.Table("project_labs").
		Where("project_id IN ?", projectIDs).
		Distinct().
		Pluck("lab_id", &labIDs).Error; err != nil {
		return nil, mapStorageErr(err)
	}
	if len(labIDs) > 0 {
		if err := labAggregate(s.db).Where("id IN ?", labIDs).Order("id").Find(&out.Labs).Error; err != nil {
			return nil, mapStorageErr(err)
		}
	}

	return out, nil
}
