package services

import (
	"errors"

	labModels "netlab/models/lab"

	"gorm.io/gorm/clause"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LabService orchestrates create/read/update/delete of the full lab
// aggregate. Every mutation runs as one all-or-nothing transaction.
type LabService struct {
	db *gorm.DB
}

func NewLabService(db *gorm.DB) *LabService {
	return &LabService{db: db}
}

// labAggregate builds the deep read query for the whole aggregate; child
// collections come back in insertion order, sections in guide order
func labAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Environment.Topology.Nodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Environment.Topology.Nodes.Interfaces", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Environment.Topology.Links", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Environment.Topology.Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Guide.Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index")
		}).
		Preload("Guide.Sections.Content", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Guide.Sections.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Guide.Sections.Verifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Resources").
		Preload("Settings")
}

// Create validates the draft structurally, then inserts the whole
// aggregate in one transaction: lab → environment → topology → nodes →
// interfaces → links → notes → guide → sections → resources → settings
func (s *LabService) Create(createdBy uint, draft *LabDraft) (*labModels.Lab, error) {
	if err := draft.validateStructure(true); err != nil {
		return nil, err
	}

	var labID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		l := labModels.Lab{
			Title:         draft.Title,
			Description:   draft.Description,
			Category:      draft.Category,
			Difficulty:    draft.Difficulty,
			EstimatedTime: draft.EstimatedTime,
			Tags:          datatypes.NewJSONSlice(draft.Tags),
			Objectives:    datatypes.NewJSONSlice(draft.Objectives),
			Prerequisites: datatypes.NewJSONSlice(draft.Prerequisites),
			Status:        draft.Status,
			CreatedBy:     createdBy,
		}
		if l.Difficulty == "" {
			l.Difficulty = labModels.DifficultyBeginner
		}
		if l.Status == "" {
			l.Status = labModels.StatusDraft
		}
		if err := tx.Create(&l).Error; err != nil {
			return err
		}
		labID = l.ID

		if err := insertEnvironment(tx, l.ID, draft.Environment); err != nil {
			return err
		}
		if err := insertGuide(tx, l.ID, draft.Guide); err != nil {
			return err
		}
		if draft.Resources != nil {
			if err := insertResources(tx, l.ID, *draft.Resources); err != nil {
				return err
			}
		}
		if draft.Settings != nil {
			if err := upsertSettings(tx, l.ID, draft.Settings); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapStorageErr(err)
	}

	return s.GetByID(labID)
}

// GetByID reassembles the complete aggregate or reports ErrNotFound; there
// is no partial or lazy loading
func (s *LabService) GetByID(id uint) (*labModels.Lab, error) {
	var l labModels.Lab
	err := labAggregate(s.db).First(&l, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapStorageErr(err)
	}
	return &l, nil
}

// List returns every lab as a full aggregate
func (s *LabService) List() ([]labModels.Lab, error) {
	var labs []labModels.Lab
	if err := labAggregate(s.db).Order("id").Find(&labs).Error; err != nil {
		return nil, mapStorageErr(err)
	}
	return labs, nil
}

// Update performs a full replace of every child collection present in the
// draft, never a diff. Node/link/section ids are caller-supplied and may
// be entirely new on each save, so delete-and-recreate inside one
// transaction is the contract.
func (s *LabService) Update(id uint, draft *LabDraft) error {
	if err := draft.validateStructure(false); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var l labModels.Lab
		if err := tx.First(&l, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":          draft.Title,
			"description":    draft.Description,
			"category":       draft.Category,
			"estimated_time": draft.EstimatedTime,
			"tags":           datatypes.NewJSONSlice(draft.Tags),
			"objectives":     datatypes.NewJSONSlice(draft.Objectives),
			"prerequisites":  datatypes.NewJSONSlice(draft.Prerequisites),
		}
		if draft.Difficulty != "" {
			updates["difficulty"] = draft.Difficulty
		}
		if draft.Status != "" {
			updates["status"] = draft.Status
		}
		if err := tx.Model(&labModels.Lab{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if draft.Environment != nil {
			var env labModels.Environment
			if err := tx.Where("lab_id = ?", id).First(&env).Error; err != nil {
				return err
			}
			envUpdates := map[string]interface{}{
				"type":           draft.Environment.Type,
				"startup_config": draft.Environment.StartupConfig,
			}
			if err := tx.Model(&labModels.Environment{}).Where("id = ?", env.ID).Updates(envUpdates).Error; err != nil {
				return err
			}
			if draft.Environment.Topology != nil {
				if err := replaceTopology(tx, env.ID, draft.Environment.Topology); err != nil {
					return err
				}
			}
		}

		if draft.Guide != nil {
			if err := replaceGuide(tx, id, draft.Guide); err != nil {
				return err
			}
		}

		if draft.Resources != nil {
			if err := tx.Where("lab_id = ?", id).Delete(&labModels.Resource{}).Error; err != nil {
				return err
			}
			if err := insertResources(tx, id, *draft.Resources); err != nil {
				return err
			}
		}

		if draft.Settings != nil {
			if err := upsertSettings(tx, id, draft.Settings); err != nil {
				return err
			}
		}

		return nil
	})
	return mapStorageErr(err)
}

// Delete cascades over the whole aggregate and the project links;
// submissions and progress rows are never touched
func (s *LabService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var l labModels.Lab
		if err := tx.First(&l, id).Error; err != nil {
			return err
		}

		if err := deleteEnvironment(tx, id); err != nil {
			return err
		}
		if err := deleteGuide(tx, id); err != nil {
			return err
		}
		if err := tx.Where("lab_id = ?", id).Delete(&labModels.Resource{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lab_id = ?", id).Delete(&labModels.LabSettings{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_labs WHERE lab_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&labModels.Lab{}, id).Error
	})
	return mapStorageErr(err)
}

func insertResources(tx *gorm.DB, labID uint, drafts []ResourceDraft) error {
	if len(drafts) == 0 {
		return nil
	}
	resources := make([]labModels.Resource, len(drafts))
	for i, rd := range drafts {
		resources[i] = labModels.Resource{
			LabID:       labID,
			Title:       rd.Title,
			Type:        rd.Type,
			URL:         rd.URL,
			Description: rd.Description,
			Required:    rd.Required,
		}
	}
	return tx.Create(&resources).Error
}

// upsertSettings updates the single settings row if it exists, else
// creates it
func upsertSettings(tx *gorm.DB, labID uint, d *SettingsDraft) error {
	visible := true
	if d.Visible != nil {
		visible = *d.Visible
	}
	settings := labModels.LabSettings{
		LabID:                  labID,
		MaxAttemptSubmission:   d.MaxAttemptSubmission,
		Visible:                visible,
		DisableInteractiveLab:  d.DisableInteractiveLab,
		NoLateSubmission:       d.NoLateSubmission,
		OnForceExitUponTimeout: d.OnForceExitUponTimeout,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lab_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"max_attempt_submission",
			"visible",
			"disable_interactive_lab",
			"no_late_submission",
			"on_force_exit_upon_timeout",
		}),
	}).Create(&settings).Error
}
