package services

import (
	"errors"

	labModels "netlab/models/lab"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Statement shaping for the Guide → Sections → {ContentBlocks, Tasks,
// Verifications} branch of the lab aggregate.

func insertGuide(tx *gorm.DB, labID uint, d *GuideDraft) error {
	g := labModels.Guide{
		LabID:          labID,
		CurrentSection: d.CurrentSection,
	}
	if err := tx.Create(&g).Error; err != nil {
		return err
	}
	return insertSections(tx, g.ID, d.Sections)
}

// insertSections creates each section in caller-given order together with
// its content blocks, tasks and verification steps
func insertSections(tx *gorm.DB, guideID uint, sections []SectionDraft) error {
	for _, sd := range sections {
		sec := labModels.Section{
			GuideID:       guideID,
			SectionKey:    sd.ID,
			Title:         sd.Title,
			Type:          sd.Type,
			OrderIndex:    sd.Order,
			EstimatedTime: sd.EstimatedTime,
			Hints:         datatypes.NewJSONSlice(sd.Hints),
		}
		if err := tx.Create(&sec).Error; err != nil {
			return err
		}

		if len(sd.Content) > 0 {
			blocks := make([]labModels.ContentBlock, len(sd.Content))
			for i, cd := range sd.Content {
				blocks[i] = labModels.ContentBlock{
					SectionID: sec.ID,
					BlockKey:  cd.ID,
					Type:      cd.Type,
					Content:   cd.Content,
					Metadata:  cd.Metadata,
				}
			}
			if err := tx.Create(&blocks).Error; err != nil {
				return err
			}
		}

		if len(sd.Tasks) > 0 {
			tasks := make([]labModels.Task, len(sd.Tasks))
			for i, td := range sd.Tasks {
				tasks[i] = labModels.Task{
					SectionID:      sec.ID,
					TaskKey:        td.ID,
					Description:    td.Description,
					TargetDevice:   td.Device,
					Commands:       datatypes.NewJSONSlice(td.Commands),
					ExpectedResult: td.ExpectedResult,
					Completed:      td.Completed,
					Hints:          datatypes.NewJSONSlice(td.Hints),
				}
			}
			if err := tx.Create(&tasks).Error; err != nil {
				return err
			}
		}

		if len(sd.Verifications) > 0 {
			verifs := make([]labModels.Verification, len(sd.Verifications))
			for i, vd := range sd.Verifications {
				verifs[i] = labModels.Verification{
					SectionID:          sec.ID,
					VerificationKey:    vd.ID,
					Description:        vd.Description,
					Commands:           datatypes.NewJSONSlice(vd.Commands),
					ExpectedOutput:     vd.ExpectedOutput,
					RequiresScreenshot: vd.RequiresScreenshot,
					TargetDevice:       vd.Device,
					Completed:          vd.Completed,
				}
			}
			if err := tx.Create(&verifs).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// replaceGuide updates the guide scalars, drops every section with its
// children and recreates them from the draft
func replaceGuide(tx *gorm.DB, labID uint, d *GuideDraft) error {
	var g labModels.Guide
	if err := tx.Where("lab_id = ?", labID).First(&g).Error; err != nil {
		return err
	}

	if err := tx.Model(&labModels.Guide{}).Where("id = ?", g.ID).
		Update("current_section", d.CurrentSection).Error; err != nil {
		return err
	}

	if err := deleteSections(tx, g.ID); err != nil {
		return err
	}
	return insertSections(tx, g.ID, d.Sections)
}

func deleteSections(tx *gorm.DB, guideID uint) error {
	sectionIDs := tx.Model(&labModels.Section{}).Select("id").Where("guide_id = ?", guideID)
	if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&labModels.ContentBlock{}).Error; err != nil {
		return err
	}
	if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&labModels.Task{}).Error; err != nil {
		return err
	}
	if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&labModels.Verification{}).Error; err != nil {
		return err
	}
	return tx.Where("guide_id = ?", guideID).Delete(&labModels.Section{}).Error
}

// deleteGuide removes the whole guide branch of a lab
func deleteGuide(tx *gorm.DB, labID uint) error {
	var g labModels.Guide
	if err := tx.Where("lab_id = ?", labID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := deleteSections(tx, g.ID); err != nil {
		return err
	}
	return tx.Delete(&labModels.Guide{}, g.ID).Error
}
