package services

import (
	"errors"
	"os"
	"testing"
	"time"

	"netlab/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type submissionFixture struct {
	db        *gorm.DB
	labSvc    *LabService
	subSvc    *SubmissionService
	uploadDir string
	classroom uint
	project   uint
	labIDs    []uint
}

// newSubmissionFixture creates labCount labs (each with the sample
// two-attempt ceiling unless maxAttempts is nil'd by the caller later)
// linked to one project
func newSubmissionFixture(t *testing.T, labCount int) *submissionFixture {
	t.Helper()

	db := setupTestDB(t)
	labSvc := NewLabService(db)
	uploadDir := t.TempDir()

	var labIDs []uint
	for i := 0; i < labCount; i++ {
		draft := sampleDraft()
		if i > 0 {
			draft.Title = draft.Title + " II"
		}
		created, err := labSvc.Create(1, draft)
		require.NoError(t, err)
		labIDs = append(labIDs, created.ID)
	}

	classroomID, projectID := seedProject(t, db, labIDs...)

	return &submissionFixture{
		db:        db,
		labSvc:    labSvc,
		subSvc:    NewSubmissionService(db, uploadDir),
		uploadDir: uploadDir,
		classroom: classroomID,
		project:   projectID,
		labIDs:    labIDs,
	}
}

func (f *submissionFixture) input(userID, labID uint) *SubmitInput {
	return &SubmitInput{
		UserID:                 userID,
		ClassroomID:            f.classroom,
		ProjectID:              f.project,
		LabID:                  labID,
		CompletedTasks:         []string{"t1"},
		CompletedVerifications: []string{"v1"},
		CompletedSections:      []string{"s1", "s2"},
	}
}

func TestSubmitCreatesPendingSubmission(t *testing.T) {
	f := newSubmissionFixture(t, 2)

	file, path := makeUpload(t, f.uploadDir, "report.pdf")
	in := f.input(10, f.labIDs[0])
	in.Files = []SubmittedFile{file}

	sub, err := f.subSvc.Submit(in)
	require.NoError(t, err)

	assert.Equal(t, 1, sub.Attempt)
	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.False(t, sub.SubmittedAt.IsZero())
	require.Len(t, sub.Files, 1)
	assert.Equal(t, "report.pdf", sub.Files[0].OriginalName)

	// the uploaded file is untouched by a first submission
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	// progress was created lazily: 1 of 2 project labs completed
	var prog models.Progress
	require.NoError(t, f.db.Where("user_id = ? AND project_id = ?", 10, f.project).First(&prog).Error)
	assert.Equal(t, 50, prog.PercentComplete)
	assert.Equal(t, models.ProgressInProgress, prog.Status)

	var lp models.LabProgress
	require.NoError(t, f.db.Where("progress_id = ? AND lab_id = ?", prog.ID, f.labIDs[0]).First(&lp).Error)
	assert.Equal(t, models.ProgressCompleted, lp.Status)
	assert.Equal(t, 100, lp.PercentComplete)
	assert.Equal(t, []string{"t1"}, []string(lp.CompletedTasks))
	assert.Equal(t, []string{"s1", "s2"}, []string(lp.CompletedSections))
	require.NotNil(t, lp.StartedAt)
	require.NotNil(t, lp.CompletedAt)
}

func TestResubmitSupersedesFiles(t *testing.T) {
	f := newSubmissionFixture(t, 1)

	first, firstPath := makeUpload(t, f.uploadDir, "draft.txt")
	in := f.input(10, f.labIDs[0])
	in.Files = []SubmittedFile{first}
	sub1, err := f.subSvc.Submit(in)
	require.NoError(t, err)

	var lp1 models.LabProgress
	require.NoError(t, f.db.Where("lab_id = ?", f.labIDs[0]).First(&lp1).Error)

	time.Sleep(5 * time.Millisecond)

	second, secondPath := makeUpload(t, f.uploadDir, "final.txt")
	in2 := f.input(10, f.labIDs[0])
	in2.Files = []SubmittedFile{second}
	sub2, err := f.subSvc.Submit(in2)
	require.NoError(t, err)

	assert.Equal(t, sub1.ID, sub2.ID)
	assert.Equal(t, 2, sub2.Attempt)
	assert.Equal(t, models.SubmissionPending, sub2.Status)
	require.Len(t, sub2.Files, 1)
	assert.Equal(t, "final.txt", sub2.Files[0].OriginalName)

	// the superseded file is gone from the store and from disk
	assert.EqualValues(t, 1, count(t, f.db, &models.SubmissionFile{}))
	_, statErr := os.Stat(firstPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(secondPath)
	assert.NoError(t, statErr)

	// cleanup queue drained after the post-commit sweep
	assert.Zero(t, count(t, f.db, &models.FileCleanup{}))

	// started_at survives resubmission, completed_at moves forward
	var lp2 models.LabProgress
	require.NoError(t, f.db.Where("lab_id = ?", f.labIDs[0]).First(&lp2).Error)
	require.NotNil(t, lp2.StartedAt)
	assert.True(t, lp2.StartedAt.Equal(*lp1.StartedAt))
	assert.True(t, lp2.CompletedAt.After(*lp1.CompletedAt))
}

func TestAttemptCeiling(t *testing.T) {
	f := newSubmissionFixture(t, 1) // sampleDraft sets maxAttemptSubmission = 2

	_, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)
	sub2, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)
	assert.Equal(t, 2, sub2.Attempt)

	_, err = f.subSvc.Submit(f.input(10, f.labIDs[0]))
	assert.True(t, errors.Is(err, ErrMaxAttemptsReached))

	// the stored attempt count is unchanged by the rejected call
	var stored models.LabSubmission
	require.NoError(t, f.db.Where("user_id = ? AND lab_id = ?", 10, f.labIDs[0]).First(&stored).Error)
	assert.Equal(t, 2, stored.Attempt)
}

func TestAttemptCeilingIsPerStudent(t *testing.T) {
	f := newSubmissionFixture(t, 1)

	_, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)
	_, err = f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)

	// another student still has attempts left
	sub, err := f.subSvc.Submit(f.input(11, f.labIDs[0]))
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Attempt)
}

func TestSubmitUnlimitedWithoutSettings(t *testing.T) {
	db := setupTestDB(t)
	labSvc := NewLabService(db)

	draft := sampleDraft()
	draft.Settings = nil
	created, err := labSvc.Create(1, draft)
	require.NoError(t, err)
	classroomID, projectID := seedProject(t, db, created.ID)

	subSvc := NewSubmissionService(db, t.TempDir())
	in := &SubmitInput{UserID: 10, ClassroomID: classroomID, ProjectID: projectID, LabID: created.ID}

	for i := 0; i < 3; i++ {
		_, err := subSvc.Submit(in)
		require.NoError(t, err)
	}

	var stored models.LabSubmission
	require.NoError(t, db.Where("user_id = ?", 10).First(&stored).Error)
	assert.Equal(t, 3, stored.Attempt)
}

func TestProgressConvergence(t *testing.T) {
	f := newSubmissionFixture(t, 2)

	_, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)

	var prog models.Progress
	require.NoError(t, f.db.Where("user_id = ?", 10).First(&prog).Error)
	assert.Equal(t, 50, prog.PercentComplete)
	assert.Equal(t, models.ProgressInProgress, prog.Status)

	_, err = f.subSvc.Submit(f.input(10, f.labIDs[1]))
	require.NoError(t, err)

	require.NoError(t, f.db.Where("user_id = ?", 10).First(&prog).Error)
	assert.Equal(t, 100, prog.PercentComplete)
	assert.Equal(t, models.ProgressCompleted, prog.Status)

	// resubmitting a completed lab keeps the aggregate converged
	_, err = f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)
	require.NoError(t, f.db.Where("user_id = ?", 10).First(&prog).Error)
	assert.Equal(t, 100, prog.PercentComplete)
	assert.Equal(t, models.ProgressCompleted, prog.Status)

	// exactly one progress row exists for the pair
	assert.EqualValues(t, 1, count(t, f.db, &models.Progress{}))
}

func TestSubmitValidatesRequiredFields(t *testing.T) {
	f := newSubmissionFixture(t, 1)

	in := f.input(10, f.labIDs[0])
	in.ProjectID = 0

	_, err := f.subSvc.Submit(in)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestGradeByID(t *testing.T) {
	f := newSubmissionFixture(t, 1)

	sub, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)

	graded, err := f.subSvc.GradeByID(sub.ID, 87.5, "Good adjacency debugging")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionGraded, graded.Status)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, 87.5, *graded.Grade)
	require.NotNil(t, graded.Feedback)
	assert.Equal(t, "Good adjacency debugging", *graded.Feedback)

	// grading is an overlay: attempt and progress are untouched
	assert.Equal(t, sub.Attempt, graded.Attempt)
	var prog models.Progress
	require.NoError(t, f.db.Where("user_id = ?", 10).First(&prog).Error)
	assert.Equal(t, 100, prog.PercentComplete)

	_, err = f.subSvc.GradeByID(99999, 50, "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResubmitAfterGrading(t *testing.T) {
	f := newSubmissionFixture(t, 1)

	sub, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)
	_, err = f.subSvc.GradeByID(sub.ID, 60, "redo section 2")
	require.NoError(t, err)

	resub, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)
	assert.Equal(t, 2, resub.Attempt)
	assert.Equal(t, models.SubmissionPending, resub.Status)
}

func TestClassroomLabSubmissions(t *testing.T) {
	f := newSubmissionFixture(t, 2)

	_, err := f.subSvc.Submit(f.input(10, f.labIDs[0]))
	require.NoError(t, err)
	_, err = f.subSvc.Submit(f.input(11, f.labIDs[0]))
	require.NoError(t, err)
	_, err = f.subSvc.Submit(f.input(11, f.labIDs[1]))
	require.NoError(t, err)

	all, err := f.subSvc.ClassroomLabSubmissions(f.classroom, nil)
	require.NoError(t, err)
	assert.Len(t, all.Submissions, 3)
	require.Len(t, all.Labs, 2)
	// labs come back fully loaded for review tooling
	assert.Len(t, all.Labs[0].Environment.Topology.Nodes, 2)
	assert.Len(t, all.Labs[0].Guide.Sections, 2)

	student := uint(11)
	filtered, err := f.subSvc.ClassroomLabSubmissions(f.classroom, &student)
	require.NoError(t, err)
	assert.Len(t, filtered.Submissions, 2)
	for _, s := range filtered.Submissions {
		assert.Equal(t, student, s.UserID)
	}

	empty, err := f.subSvc.ClassroomLabSubmissions(9999, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Submissions)
	assert.Empty(t, empty.Labs)
}
