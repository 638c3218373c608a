package snapshot

import (
	"time"
)

// State is the desired state of a snapshot image.
type State string

const (
	// StatePresent requests that an image is created from a server.
	StatePresent State = "present"
	// StateAbsent requests that all images with a name are deleted.
	StateAbsent State = "absent"
)

// Action names the mutation a reconciliation performed.
type Action string

const (
	// ActionCreate is reported for present requests.
	ActionCreate Action = "create"
	// ActionDelete is reported for absent requests.
	ActionDelete Action = "delete"
)

// Status is the lifecycle status of a remote image.
type Status string

// Image statuses.
const (
	StatusQueued  Status = "QUEUED"
	StatusSaving  Status = "SAVING"
	StatusActive  Status = "ACTIVE"
	StatusError   Status = "ERROR"
	StatusDeleted Status = "DELETED"
	StatusUnknown Status = "UNKNOWN"
)

// Outcome strings recorded on results.
const (
	OutcomeActive  = string(StatusActive)
	OutcomeDeleted = string(StatusDeleted)
	OutcomeError   = string(StatusError)
)

// Request declares the desired state of a snapshot image.
type Request struct {
	InstanceID string
	// InstanceName is accepted for compatibility but not used to resolve the server.
	InstanceName string
	ImageName    string
	// Metadata is accepted but never transmitted to the backend.
	Metadata    map[string]string
	State       State
	Wait        bool
	WaitTimeout time.Duration
	// BoundCreateWait applies WaitTimeout to the create-path wait, which is
	// otherwise bounded only by the context.
	BoundCreateWait bool
}

// Validate checks the preconditions that must hold before any remote call.
func (r Request) Validate() error {
	if r.ImageName == "" {
		return &ValidationError{Field: "image_name", Message: "is required"}
	}
	switch r.State {
	case StatePresent:
		if r.InstanceID == "" {
			return &ValidationError{Field: "instance_id", Message: "is required for present state"}
		}
	case StateAbsent:
	default:
		return &ValidationError{Field: "state", Message: "must be one of present, absent; got " + string(r.State)}
	}
	return nil
}

// Server is the subset of a cloud server the reconciler needs.
type Server struct {
	ID     string
	Name   string
	Status string
}

// Link is a hypermedia reference to an image.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Image is an observed snapshot of a remote image. Only the backend mutates
// the underlying resource.
type Image struct {
	ID       string
	Name     string
	Status   Status
	Created  time.Time
	Progress int
	// MinDisk is in GB, MinRAM in MB.
	MinDisk  int
	MinRAM   int
	Links    []Link
	ServerID string
	Metadata map[string]string
}

// AffectedImage is an image touched by a reconciliation together with its
// outcome. At most one of Success and Error is set.
type AffectedImage struct {
	Image   Image
	Success string
	Error   string
}

// Result is the outcome of one reconciliation.
type Result struct {
	Changed bool
	Action  Action
	Images  []AffectedImage
	Success string
	Error   string
}

// Failed reports whether any outcome recorded on the result is an error.
func (r *Result) Failed() bool {
	return r != nil && r.Error != ""
}
