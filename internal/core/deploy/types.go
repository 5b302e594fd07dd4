package deploy

// =============================================================================
// Document - Orchestrator Input Contract
// =============================================================================

// Document is the configuration consumed by the Kitten orchestrator's /spawn
// endpoint. The shape is defined by the orchestrator; Meow produces documents
// conforming to it but does not interpret field semantics.
type Document struct {
	Version    string                   `json:"version"`
	Containers map[string]ContainerSpec `json:"containers"`
	Networks   map[string]NetworkSpec   `json:"networks,omitempty"`
}

// ContainerSpec describes a single container to deploy.
type ContainerSpec struct {
	Image       string            `json:"image"`
	Command     []string          `json:"command,omitempty"`
	Hostname    string            `json:"hostname,omitempty"`
	WorkingDir  string            `json:"workdir,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	Ports       []string          `json:"ports,omitempty"` // "hostPort:containerPort"
	Network     string            `json:"network,omitempty"`
	IP          string            `json:"ip,omitempty"`
	DependsOn   []string          `json:"depends_on,omitempty"`
	Restart     string            `json:"restart,omitempty"` // no, always, on-failure
}

// NetworkSpec describes a network shared by containers.
type NetworkSpec struct {
	Driver  string `json:"driver"` // bridge, host, none
	Subnet  string `json:"subnet,omitempty"`
	Gateway string `json:"gateway,omitempty"`
}

// ContainerCount returns the number of deployable units in the document.
func (d *Document) ContainerCount() int {
	return len(d.Containers)
}
