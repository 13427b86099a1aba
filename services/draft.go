package services

import (
	labModels "netlab/models/lab"
)

// LabDraft is the authoring payload for creating or replacing a lab
// aggregate. On update, every present child section replaces the stored
// collection wholesale; absent sections are left untouched.
type LabDraft struct {
	Title         string   `json:"title" validate:"required,min=3"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	EstimatedTime int      `json:"estimatedTime" validate:"gte=0"`
	Tags          []string `json:"tags"`
	Objectives    []string `json:"objectives"`
	Prerequisites []string `json:"prerequisites"`
	Status        string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`

	Environment *EnvironmentDraft `json:"environment" validate:"omitempty"`
	Guide       *GuideDraft       `json:"guide" validate:"omitempty"`
	Resources   *[]ResourceDraft  `json:"resources" validate:"omitempty,dive"`
	Settings    *SettingsDraft    `json:"settings" validate:"omitempty"`
}

type EnvironmentDraft struct {
	Type          string         `json:"type" validate:"required"`
	StartupConfig *string        `json:"startupConfig"`
	Topology      *TopologyDraft `json:"topology" validate:"omitempty"`
}

type TopologyDraft struct {
	LayoutWidth  int         `json:"layoutWidth"`
	LayoutHeight int         `json:"layoutHeight"`
	Nodes        []NodeDraft `json:"nodes" validate:"dive"`
	Links        []LinkDraft `json:"links" validate:"dive"`
	Notes        []NoteDraft `json:"notes" validate:"dive"`
}

// NodeDraft.ID is the authoring UI's stable node id; links and the
// completed-task bookkeeping reference it, the database does not
type NodeDraft struct {
	ID         string           `json:"id" validate:"required"`
	Name       string           `json:"name"`
	Type       string           `json:"type" validate:"omitempty,oneof=router switch pc server firewall cloud"`
	X          float64          `json:"x"`
	Y          float64          `json:"y"`
	Icon       string           `json:"icon"`
	Status     string           `json:"status"`
	Username   *string          `json:"username"`
	Password   *string          `json:"password"`
	Interfaces []InterfaceDraft `json:"interfaces" validate:"dive"`
}

type InterfaceDraft struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	IPAddress *string `json:"ipAddress"`
	Subnet    *string `json:"subnet"`
	Enabled   bool    `json:"enabled"`
	Status    string  `json:"status" validate:"omitempty,oneof=up down admin-down"`
}

type LinkDraft struct {
	ID         string  `json:"id"`
	Source     string  `json:"source" validate:"required"`
	Target     string  `json:"target" validate:"required"`
	SourcePort *string `json:"sourcePort"`
	TargetPort *string `json:"targetPort"`
	Status     string  `json:"status" validate:"omitempty,oneof=up down"`
}

type NoteDraft struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type GuideDraft struct {
	CurrentSection int            `json:"currentSection" validate:"gte=0"`
	Sections       []SectionDraft `json:"sections" validate:"dive"`
}

type SectionDraft struct {
	ID            string              `json:"id"`
	Title         string              `json:"title" validate:"required"`
	Type          string              `json:"type"`
	Order         int                 `json:"order" validate:"gte=0"`
	EstimatedTime int                 `json:"estimatedTime"`
	Hints         []string            `json:"hints"`
	Content       []ContentBlockDraft `json:"content" validate:"dive"`
	Tasks         []TaskDraft         `json:"tasks" validate:"dive"`
	Verifications []VerificationDraft `json:"verifications" validate:"dive"`
}

type ContentBlockDraft struct {
	ID       string                    `json:"id"`
	Type     string                    `json:"type" validate:"omitempty,oneof=TEXT CODE IMAGE VIDEO CALLOUT"`
	Content  string                    `json:"content"`
	Metadata labModels.ContentMetadata `json:"metadata"`
}

type TaskDraft struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Device         string   `json:"device"`
	Commands       []string `json:"commands"`
	ExpectedResult string   `json:"expectedResult"`
	Completed      bool     `json:"completed"`
	Hints          []string `json:"hints"`
}

type VerificationDraft struct {
	ID                 string   `json:"id"`
	Description        string   `json:"description"`
	Commands           []string `json:"commands"`
	ExpectedOutput     string   `json:"expectedOutput"`
	RequiresScreenshot bool     `json:"requiresScreenshot"`
	Device             string   `json:"device"`
	Completed          bool     `json:"completed"`
}

type ResourceDraft struct {
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=DOCUMENT VIDEO LINK DOWNLOAD TOOL"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

type SettingsDraft struct {
	MaxAttemptSubmission   *int   `json:"maxAttemptSubmission" validate:"omitempty,gte=1"`
	Visible                *bool  `json:"visible"`
	DisableInteractiveLab  bool   `json:"disableInteractiveLab"`
	NoLateSubmission       bool   `json:"noLateSubmission"`
	OnForceExitUponTimeout string `json:"onForceExitUponTimeout"`
}

// validateStructure enforces the write-time structural invariants: every
// link must reference a declared node id and every section order must be
// unique within the guide. Duplicate node ids are left to the topology's
// unique index, which surfaces as a ConflictError.
func (d *LabDraft) validateStructure(requireAggregate bool) error {
	if requireAggregate {
		if d.Environment == nil || d.Environment.Topology == nil {
			return newValidationError("lab requires an environment with a topology")
		}
		if d.Guide == nil {
			return newValidationError("lab requires a guide")
		}
	}

	if d.Environment != nil && d.Environment.Topology != nil {
		topo := d.Environment.Topology
		nodeKeys := make(map[string]bool, len(topo.Nodes))
		for _, n := range topo.Nodes {
			nodeKeys[n.ID] = true
		}
		for _, l := range topo.Links {
			if !nodeKeys[l.Source] {
				return newValidationError("link %q references unknown node id %q", l.ID, l.Source)
			}
			if !nodeKeys[l.Target] {
				return newValidationError("link %q references unknown node id %q", l.ID, l.Target)
			}
		}
	}

	if d.Guide != nil {
		seen := make(map[int]string, len(d.Guide.Sections))
		for _, s := range d.Guide.Sections {
			if other, dup := seen[s.Order]; dup {
				return newValidationError("sections %q and %q share order %d", other, s.ID, s.Order)
			}
			seen[s.Order] = s.ID
		}
	}

	return nil
}
