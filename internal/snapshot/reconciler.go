package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
)

// Reconciler drives snapshot images toward a requested state.
type Reconciler struct {
	backend  Backend
	poller   *Poller
	interval time.Duration
	log      logr.Logger
	metrics  *Metrics
	now      func() time.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logr.Logger) Option {
	return func(r *Reconciler) {
		r.log = l
	}
}

// WithPollInterval sets the fixed delay between status lookups.
func WithPollInterval(d time.Duration) Option {
	return func(r *Reconciler) {
		r.interval = d
	}
}

// WithMetrics records reconciliation metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithClock replaces the clock used for wait deadlines.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

// NewReconciler creates a Reconciler over backend.
func NewReconciler(backend Backend, opts ...Option) *Reconciler {
	r := &Reconciler{
		backend:  backend,
		interval: DefaultPollInterval,
		log:      logr.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.poller = NewPoller(r.interval)
	r.poller.now = r.now
	return r
}

// Reconcile validates req and drives the backend toward its state.
//
// Validation, missing servers and failed backend calls are returned as errors.
// For absent requests a failed delete also returns the partial result holding
// the deletions accepted before it. Wait outcomes are never errors; they are
// recorded on the result.
func (r *Reconciler) Reconcile(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := r.now()
	var (
		res    *Result
		err    error
		action Action
	)

	switch req.State {
	case StatePresent:
		action = ActionCreate
		res, err = r.ensurePresent(ctx, req)
	case StateAbsent:
		action = ActionDelete
		res, err = r.ensureAbsent(ctx, req)
	}

	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case res.Failed():
		outcome = "failed"
	}
	r.metrics.recordReconcile(action, outcome, r.now().Sub(start).Seconds())

	return res, err
}

func (r *Reconciler) ensurePresent(ctx context.Context, req Request) (*Result, error) {
	log := r.log.WithValues("action", ActionCreate, "server", req.InstanceID, "name", req.ImageName)

	server, err := r.backend.GetServer(ctx, req.InstanceID)
	if IsNotFound(err) || (err == nil && server == nil) {
		return nil, &NotFoundError{Resource: "server", ID: req.InstanceID}
	}
	if err != nil {
		return nil, asBackendError("get server", req.InstanceID, err)
	}

	if len(req.Metadata) > 0 {
		log.Info("Image metadata is not supported by the backend and will be ignored", "keys", lo.Keys(req.Metadata))
	}

	imageID, err := r.backend.CreateImage(ctx, server.ID, req.ImageName)
	if err != nil {
		return nil, asBackendError("create image", server.ID, err)
	}
	log = log.WithValues("image", imageID)
	log.Info("Image creation requested")

	image, err := r.backend.GetImage(ctx, imageID)
	if err != nil {
		return nil, asBackendError("get image", imageID, err)
	}
	if image == nil {
		return nil, &NotFoundError{Resource: "image", ID: imageID}
	}
	log.V(1).Info("Image fetched", "status", image.Status, "progress", image.Progress)

	affected := AffectedImage{Image: *image}

	if req.Wait {
		var deadline time.Time
		if req.BoundCreateWait {
			deadline = r.now().Add(req.WaitTimeout)
		}

		last := *image
		lookup := func(ctx context.Context) (Status, error) {
			img, err := r.backend.GetImage(ctx, imageID)
			if err != nil {
				return "", err
			}
			if img == nil {
				return "", ErrNotFound
			}
			last = *img
			return img.Status, nil
		}

		out, err := r.poller.PollUntilTerminal(ctx, lookup, []Status{StatusActive, StatusError}, deadline)
		r.metrics.recordPoll(ActionCreate, out.Attempts)
		if err != nil {
			return nil, asBackendError("wait for image", imageID, err)
		}

		affected.Image = last
		if !out.NotFound && !out.TimedOut && out.Status == StatusActive {
			affected.Success = OutcomeActive
		} else {
			affected.Error = OutcomeError
		}
		log.Info("Image wait finished",
			"status", last.Status, "attempts", out.Attempts,
			"notFound", out.NotFound, "timedOut", out.TimedOut,
			"success", affected.Success, "error", affected.Error)
	}

	r.metrics.recordImage(ActionCreate, affected)

	return &Result{
		Changed: true,
		Action:  ActionCreate,
		Images:  []AffectedImage{affected},
		Success: affected.Success,
		Error:   affected.Error,
	}, nil
}

func (r *Reconciler) ensureAbsent(ctx context.Context, req Request) (*Result, error) {
	log := r.log.WithValues("action", ActionDelete, "name", req.ImageName)

	res := &Result{Action: ActionDelete, Images: []AffectedImage{}}

	images, err := r.backend.ListImages(ctx)
	if err != nil {
		return nil, asBackendError("list images", "", err)
	}

	matches := MatchingImages(images, req.ImageName)
	log.V(1).Info("Images listed", "total", len(images), "matching", len(matches))

	for _, image := range matches {
		ilog := log.WithValues("image", image.ID)

		if err := r.backend.DeleteImage(ctx, image.ID); err != nil {
			ilog.Error(err, "Image deletion failed, skipping remaining images")
			settle(res, req.Wait)
			return res, asBackendError("delete image", image.ID, err)
		}
		res.Changed = true
		ilog.Info("Image deletion accepted")

		affected := AffectedImage{Image: image}
		if req.Wait {
			if err := r.waitGone(ctx, req, &affected); err != nil {
				affected.Error = OutcomeError
				res.Images = append(res.Images, affected)
				settle(res, req.Wait)
				return res, err
			}
			ilog.Info("Image wait finished", "success", affected.Success, "error", affected.Error)
		}

		r.metrics.recordImage(ActionDelete, affected)
		res.Images = append(res.Images, affected)
	}

	settle(res, req.Wait)
	return res, nil
}

// settle derives the top-level outcome of a delete from its images.
func settle(res *Result, waited bool) {
	failed := lo.ContainsBy(res.Images, func(img AffectedImage) bool { return img.Error != "" })
	switch {
	case failed:
		res.Error = OutcomeError
	case waited && len(res.Images) > 0:
		res.Success = OutcomeDeleted
	}
}

// waitGone polls a deleted image until the backend no longer reports it.
func (r *Reconciler) waitGone(ctx context.Context, req Request, affected *AffectedImage) error {
	id := affected.Image.ID
	lookup := func(ctx context.Context) (Status, error) {
		img, err := r.backend.GetImage(ctx, id)
		if err != nil {
			return "", err
		}
		if img == nil {
			return "", ErrNotFound
		}
		return img.Status, nil
	}

	out, err := r.poller.PollUntilTerminal(ctx, lookup, nil, r.now().Add(req.WaitTimeout))
	r.metrics.recordPoll(ActionDelete, out.Attempts)
	if err != nil {
		return asBackendError("wait for image deletion", id, err)
	}

	if out.NotFound {
		affected.Image.Status = StatusDeleted
		affected.Success = OutcomeDeleted
	} else {
		affected.Error = OutcomeError
	}
	return nil
}

// MatchingImages returns the images named name, in their original order.
func MatchingImages(images []Image, name string) []Image {
	return lo.Filter(images, func(img Image, _ int) bool {
		return img.Name == name
	})
}

// IsNotFound reports whether err signals a missing resource.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// String renders the result for logs.
func (r *Result) String() string {
	ids := lo.Map(r.Images, func(img AffectedImage, _ int) string { return img.Image.ID })
	return fmt.Sprintf("action=%s changed=%t images=%v success=%q error=%q", r.Action, r.Changed, ids, r.Success, r.Error)
}
