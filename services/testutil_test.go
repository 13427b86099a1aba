package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"netlab/database"
	"netlab/models"
	labModels "netlab/models/lab"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// sampleDraft builds a two-router draft covering every aggregate branch
func sampleDraft() *LabDraft {
	return &LabDraft{
		Title:         "OSPF Single Area",
		Description:   "Configure OSPF between two routers",
		Category:      "routing",
		Difficulty:    "INTERMEDIATE",
		EstimatedTime: 45,
		Tags:          []string{"ospf", "routing"},
		Objectives:    []string{"Bring up an OSPF adjacency"},
		Prerequisites: []string{"ip-addressing"},
		Status:        "PUBLISHED",
		Environment: &EnvironmentDraft{
			Type:          "containerlab",
			StartupConfig: strPtr("hostname base\n"),
			Topology: &TopologyDraft{
				LayoutWidth:  1200,
				LayoutHeight: 800,
				Nodes: []NodeDraft{
					{
						ID: "r1", Name: "R1", Type: "router", X: 100, Y: 120,
						Icon: "router", Status: "stopped",
						Username: strPtr("admin"), Password: strPtr("admin"),
						Interfaces: []InterfaceDraft{
							{ID: "r1-g0", Name: "GigabitEthernet0/0", IPAddress: strPtr("10.0.0.1"), Subnet: strPtr("255.255.255.0"), Enabled: true, Status: "up"},
						},
					},
					{
						ID: "r2", Name: "R2", Type: "router", X: 400, Y: 120,
						Icon: "router", Status: "stopped",
						Interfaces: []InterfaceDraft{
							{ID: "r2-g0", Name: "GigabitEthernet0/0", IPAddress: strPtr("10.0.0.2"), Subnet: strPtr("255.255.255.0"), Enabled: true, Status: "up"},
						},
					},
				},
				Links: []LinkDraft{
					{ID: "l1", Source: "r1", Target: "r2", SourcePort: strPtr("g0/0"), TargetPort: strPtr("g0/0"), Status: "up"},
				},
				Notes: []NoteDraft{
					{ID: "n1", Text: "Core segment", X: 60, Y: 40, Width: 220, Height: 90},
				},
			},
		},
		Guide: &GuideDraft{
			CurrentSection: 0,
			Sections: []SectionDraft{
				{
					ID: "s1", Title: "Addressing", Type: "lab", Order: 0, EstimatedTime: 15,
					Hints: []string{"check subnet masks"},
					Content: []ContentBlockDraft{
						{ID: "c1", Type: "CODE", Content: "interface g0/0\n ip address 10.0.0.1 255.255.255.0",
							Metadata: labModels.ContentMetadata{Language: strPtr("ios"), Device: strPtr("r1")}},
					},
					Tasks: []TaskDraft{
						{ID: "t1", Description: "Assign interface addresses", Device: "r1",
							Commands: []string{"conf t", "interface g0/0"}, ExpectedResult: "interface up"},
					},
					Verifications: []VerificationDraft{
						{ID: "v1", Description: "Ping the peer", Commands: []string{"ping 10.0.0.2"},
							ExpectedOutput: "!!!!!", Device: "r1", RequiresScreenshot: true},
					},
				},
				{ID: "s2", Title: "OSPF", Type: "lab", Order: 1, EstimatedTime: 30},
			},
		},
		Resources: &[]ResourceDraft{
			{Title: "OSPF RFC", Type: "LINK", URL: "https://example.com/rfc2328"},
		},
		Settings: &SettingsDraft{MaxAttemptSubmission: intPtr(2)},
	}
}

// seedProject creates a classroom, a project and the join rows linking
// the given labs to the project
func seedProject(t *testing.T, db *gorm.DB, labIDs ...uint) (classroomID, projectID uint) {
	t.Helper()

	classroom := models.Classroom{Name: "CCNA Evening", CreatedBy: 1}
	require.NoError(t, db.Create(&classroom).Error)

	project := models.Project{ClassroomID: classroom.ID, Title: "Week 1"}
	require.NoError(t, db.Create(&project).Error)

	for _, labID := range labIDs {
		require.NoError(t, db.Exec(
			"INSERT INTO project_labs (project_id, lab_id) VALUES (?, ?)", project.ID, labID,
		).Error)
	}
	return classroom.ID, project.ID
}

// makeUpload drops a physical file into uploadDir the way the upload
// handler would and returns its service-facing record
func makeUpload(t *testing.T, uploadDir, originalName string) (SubmittedFile, string) {
	t.Helper()

	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(uploadDir, name)
	require.NoError(t, os.WriteFile(path, []byte("submission payload"), 0644))

	return SubmittedFile{URL: "/uploads/" + name, OriginalName: originalName}, path
}
