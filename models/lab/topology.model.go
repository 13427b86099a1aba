package lab

// Environment describes the virtualization backend of a lab and owns the
// device topology
type Environment struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	LabID         uint     `json:"-" gorm:"uniqueIndex;not null"`
	Type          string   `json:"type"` // virtualization backend tag, e.g. containerlab, gns3
	StartupConfig *string  `json:"startupConfig,omitempty"`
	Topology      Topology `json:"topology" gorm:"foreignKey:EnvironmentID"`
}

// Topology is the device graph of an environment: nodes, the links between
// them and free-floating annotation notes
type Topology struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	EnvironmentID uint   `json:"-" gorm:"uniqueIndex;not null"`
	LayoutWidth   int    `json:"layoutWidth"`
	LayoutHeight  int    `json:"layoutHeight"`
	Nodes         []Node `json:"nodes" gorm:"foreignKey:TopologyID"`
	Links         []Link `json:"links" gorm:"foreignKey:TopologyID"`
	Notes         []Note `json:"notes" gorm:"foreignKey:TopologyID"`
}

// Node is a virtual device. NodeKey is the caller-supplied stable id the
// authoring UI uses to wire links and interfaces; it is unique per topology
// but the row itself is recreated on every lab update.
type Node struct {
	ID         uint        `json:"-" gorm:"primaryKey"`
	TopologyID uint        `json:"-" gorm:"index;not null;uniqueIndex:uidx_topology_node"`
	NodeKey    string      `json:"id" gorm:"not null;uniqueIndex:uidx_topology_node"`
	Name       string      `json:"name"`
	Type       string      `json:"type"` // router, switch, pc, server, firewall, cloud
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Icon       string      `json:"icon"`
	Status     string      `json:"status"`
	Username   *string     `json:"username,omitempty"`
	Password   *string     `json:"password,omitempty"`
	Interfaces []Interface `json:"interfaces" gorm:"foreignKey:NodeID"`
}

// Interface statuses
const (
	InterfaceUp        = "up"
	InterfaceDown      = "down"
	InterfaceAdminDown = "admin-down"
)

// Interface is a network interface of a node
type Interface struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	NodeID    uint    `json:"-" gorm:"index;not null"`
	IfaceKey  string  `json:"id"`
	Name      string  `json:"name"`
	IPAddress *string `json:"ipAddress,omitempty"`
	Subnet    *string `json:"subnet,omitempty"`
	Enabled   bool    `json:"enabled" gorm:"default:true"`
	Status    string  `json:"status" gorm:"default:'up'"`
}

// Link connects two nodes of the same topology by their NodeKey
type Link struct {
	ID         uint    `json:"-" gorm:"primaryKey"`
	TopologyID uint    `json:"-" gorm:"index;not null"`
	LinkKey    string  `json:"id"`
	SourceKey  string  `json:"source" gorm:"not null"`
	TargetKey  string  `json:"target" gorm:"not null"`
	SourcePort *string `json:"sourcePort,omitempty"`
	TargetPort *string `json:"targetPort,omitempty"`
	Status     string  `json:"status" gorm:"default:'up'"`
}

// Note is a free-text annotation placed on the topology canvas
type Note struct {
	ID         uint    `json:"-" gorm:"primaryKey"`
	TopologyID uint    `json:"-" gorm:"index;not null"`
	NoteKey    string  `json:"id"`
	Text       string  `json:"text"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}
