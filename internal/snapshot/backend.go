package snapshot

import "context"

// Backend is the cloud image API the reconciler drives.
//
// Lookups signal a missing resource with an error satisfying
// errors.Is(err, ErrNotFound). Other failures should be *BackendError values
// so callers can tell remote error kinds apart.
type Backend interface {
	GetServer(ctx context.Context, id string) (*Server, error)
	// CreateImage requests a snapshot of the server and returns the new image id.
	CreateImage(ctx context.Context, serverID, name string) (string, error)
	GetImage(ctx context.Context, id string) (*Image, error)
	ListImages(ctx context.Context) ([]Image, error)
	DeleteImage(ctx context.Context, id string) error
}
