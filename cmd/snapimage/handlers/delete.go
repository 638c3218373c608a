package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/imamik/snapimage/internal/snapshot"
)

// ErrDeletionCancelled is returned when the user declines the confirmation prompt.
var ErrDeletionCancelled = errors.New("deletion cancelled")

// DeleteOptions are the flags of the delete command.
type DeleteOptions struct {
	Name        string
	Wait        bool
	WaitTimeout time.Duration
	Yes         bool
	Output      string
}

// confirmDeletion asks the user to confirm deleting images. Replaced in tests.
var confirmDeletion = func(ctx context.Context, name string, images []snapshot.Image) (bool, error) {
	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d image(s) named %q?", len(images), name)).
				Description(renderImageList(images)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}

// Delete handles the delete command.
//
// It deletes every snapshot image with the given name. On a terminal the
// matching images are listed and confirmation is requested first unless
// opts.Yes is set.
func Delete(ctx context.Context, g GlobalOptions, opts DeleteOptions) error {
	if err := validateOutput(opts.Output); err != nil {
		return err
	}
	if opts.Name == "" {
		return &snapshot.ValidationError{Field: "image_name", Message: "is required"}
	}

	s, err := openSession(g, g.credentialSource())
	if err != nil {
		return err
	}
	defer s.close()

	if !opts.Yes && isInteractive() {
		images, err := s.backend.ListImages(ctx)
		if err != nil {
			return fmt.Errorf("failed to list images: %w", err)
		}
		matches := snapshot.MatchingImages(images, opts.Name)
		if len(matches) > 0 {
			ok, err := confirmDeletion(ctx, opts.Name, matches)
			if err != nil {
				return err
			}
			if !ok {
				return ErrDeletionCancelled
			}
		}
	}

	req := snapshot.Request{
		ImageName:   opts.Name,
		State:       snapshot.StateAbsent,
		Wait:        opts.Wait,
		WaitTimeout: s.waitTimeout(opts.WaitTimeout),
	}

	s.log.V(1).Info("Reconciling", "state", req.State, "name", req.ImageName, "wait", req.Wait)
	rep := snapshot.NewReport(s.reconciler.Reconcile(ctx, req))
	if err := render(stdout, opts.Output, req, rep); err != nil {
		return err
	}
	return reportError(rep)
}
