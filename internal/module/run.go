package module

import (
	"context"

	"github.com/imamik/snapimage/internal/snapshot"
)

// Reconciler is the part of snapshot.Reconciler the module uses.
type Reconciler interface {
	Reconcile(ctx context.Context, req snapshot.Request) (*snapshot.Result, error)
}

// Execute converts args into a request, reconciles it and renders the outcome.
func Execute(ctx context.Context, rec Reconciler, args *Args) Response {
	req, err := args.ToRequest()
	if err != nil {
		return FailResponse(err)
	}
	return NewResponse(snapshot.NewReport(rec.Reconcile(ctx, req)))
}
