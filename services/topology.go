package services

import (
	"errors"

	labModels "netlab/models/lab"

	"gorm.io/gorm"
)

// Statement shaping for the Environment → Topology → {Nodes, Interfaces,
// Links, Notes} branch of the lab aggregate. Every helper runs inside the
// caller's transaction; insert order matters because interface rows carry
// node foreign keys.

func insertEnvironment(tx *gorm.DB, labID uint, d *EnvironmentDraft) error {
	env := labModels.Environment{
		LabID:         labID,
		Type:          d.Type,
		StartupConfig: d.StartupConfig,
	}
	if err := tx.Create(&env).Error; err != nil {
		return err
	}
	if d.Topology == nil {
		return nil
	}
	return insertTopology(tx, env.ID, d.Topology)
}

func insertTopology(tx *gorm.DB, environmentID uint, d *TopologyDraft) error {
	topo := labModels.Topology{
		EnvironmentID: environmentID,
		LayoutWidth:   d.LayoutWidth,
		LayoutHeight:  d.LayoutHeight,
	}
	if err := tx.Create(&topo).Error; err != nil {
		return err
	}
	return insertTopologyChildren(tx, topo.ID, d)
}

// insertTopologyChildren bulk-inserts nodes first, then interfaces keyed
// by the generated node ids, then links and notes
func insertTopologyChildren(tx *gorm.DB, topologyID uint, d *TopologyDraft) error {
	if len(d.Nodes) > 0 {
		nodes := make([]labModels.Node, len(d.Nodes))
		for i, nd := range d.Nodes {
			nodes[i] = labModels.Node{
				TopologyID: topologyID,
				NodeKey:    nd.ID,
				Name:       nd.Name,
				Type:       nd.Type,
				X:          nd.X,
				Y:          nd.Y,
				Icon:       nd.Icon,
				Status:     nd.Status,
				Username:   nd.Username,
				Password:   nd.Password,
			}
		}
		if err := tx.Create(&nodes).Error; err != nil {
			return err
		}

		var ifaces []labModels.Interface
		for i, nd := range d.Nodes {
			for _, ifd := range nd.Interfaces {
				ifaces = append(ifaces, labModels.Interface{
					NodeID:    nodes[i].ID,
					IfaceKey:  ifd.ID,
					Name:      ifd.Name,
					IPAddress: ifd.IPAddress,
					Subnet:    ifd.Subnet,
					Enabled:   ifd.Enabled,
					Status:    ifd.Status,
				})
			}
		}
		if len(ifaces) > 0 {
			if err := tx.Create(&ifaces).Error; err != nil {
				return err
			}
		}
	}

	if len(d.Links) > 0 {
		links := make([]labModels.Link, len(d.Links))
		for i, ld := range d.Links {
			links[i] = labModels.Link{
				TopologyID: topologyID,
				LinkKey:    ld.ID,
				SourceKey:  ld.Source,
				TargetKey:  ld.Target,
				SourcePort: ld.SourcePort,
				TargetPort: ld.TargetPort,
				Status:     ld.Status,
			}
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}

	if len(d.Notes) > 0 {
		notes := make([]labModels.Note, len(d.Notes))
		for i, nd := range d.Notes {
			notes[i] = labModels.Note{
				TopologyID: topologyID,
				NoteKey:    nd.ID,
				Text:       nd.Text,
				X:          nd.X,
				Y:          nd.Y,
				Width:      nd.Width,
				Height:     nd.Height,
			}
		}
		if err := tx.Create(&notes).Error; err != nil {
			return err
		}
	}

	return nil
}

// replaceTopology updates the topology scalars and recreates every child
// collection. Interfaces go first on the delete side and last-but-one on
// the insert side because they reference node rows.
func replaceTopology(tx *gorm.DB, environmentID uint, d *TopologyDraft) error {
	var topo labModels.Topology
	if err := tx.Where("environment_id = ?", environmentID).First(&topo).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"layout_width":  d.LayoutWidth,
		"layout_height": d.LayoutHeight,
	}
	if err := tx.Model(&labModels.Topology{}).Where("id = ?", topo.ID).Updates(updates).Error; err != nil {
		return err
	}

	if err := deleteTopologyChildren(tx, topo.ID); err != nil {
		return err
	}
	return insertTopologyChildren(tx, topo.ID, d)
}

func deleteTopologyChildren(tx *gorm.DB, topologyID uint) error {
	nodeIDs := tx.Model(&labModels.Node{}).Select("id").Where("topology_id = ?", topologyID)
	if err := tx.Where("node_id IN (?)", nodeIDs).Delete(&labModels.Interface{}).Error; err != nil {
		return err
	}
	if err := tx.Where("topology_id = ?", topologyID).Delete(&labModels.Link{}).Error; err != nil {
		return err
	}
	if err := tx.Where("topology_id = ?", topologyID).Delete(&labModels.Note{}).Error; err != nil {
		return err
	}
	return tx.Where("topology_id = ?", topologyID).Delete(&labModels.Node{}).Error
}

// deleteEnvironment removes the whole environment branch of a lab
func deleteEnvironment(tx *gorm.DB, labID uint) error {
	var env labModels.Environment
	if err := tx.Where("lab_id = ?", labID).First(&env).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var topo labModels.Topology
	err := tx.Where("environment_id = ?", env.ID).First(&topo).Error
	if err == nil {
		if err := deleteTopologyChildren(tx, topo.ID); err != nil {
			return err
		}
		if err := tx.Delete(&labModels.Topology{}, topo.ID).Error; err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Delete(&labModels.Environment{}, env.ID).Error
}
