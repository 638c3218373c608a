package handlers

import (
	"context"
	"time"

	"github.com/imamik/snapimage/internal/snapshot"
)

// CreateOptions are the flags of the create command.
type CreateOptions struct {
	InstanceID      string
	Name            string
	Meta            map[string]string
	Wait            bool
	WaitTimeout     time.Duration
	BoundCreateWait bool
	Output          string
}

// Create handles the create command.
//
// It requests a snapshot image of the server and renders the result. The
// command fails when the image ends in ERROR or a backend call fails.
func Create(ctx context.Context, g GlobalOptions, opts CreateOptions) error {
	if err := validateOutput(opts.Output); err != nil {
		return err
	}

	s, err := openSession(g, g.credentialSource())
	if err != nil {
		return err
	}
	defer s.close()

	req := snapshot.Request{
		InstanceID:      opts.InstanceID,
		ImageName:       opts.Name,
		Metadata:        opts.Meta,
		State:           snapshot.StatePresent,
		Wait:            opts.Wait,
		WaitTimeout:     s.waitTimeout(opts.WaitTimeout),
		BoundCreateWait: opts.BoundCreateWait,
	}

	s.log.V(1).Info("Reconciling", "state", req.State, "server", req.InstanceID, "name", req.ImageName, "wait", req.Wait)
	rep := snapshot.NewReport(s.reconciler.Reconcile(ctx, req))
	if err := render(stdout, opts.Output, req, rep); err != nil {
		return err
	}
	return reportError(rep)
}
