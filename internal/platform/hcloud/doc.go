// Package hcloud implements the snapshot image backend on top of the Hetzner
// Cloud API client.
//
// # Mapping
//
// Hetzner snapshots carry no name of their own; the image name used by the
// reconciler is stored as the snapshot description. Image statuses map as:
//
//   - creating    → SAVING
//   - available   → ACTIVE
//   - unavailable → ERROR
//   - deleted     → DELETED
//   - anything else → UNKNOWN
//
// # Errors
//
// Lookups of missing servers or images return snapshot.ErrNotFound. Every other
// API failure is returned as a *snapshot.BackendError whose Kind is derived from
// the hcloud error code (see errors.go). Mutating calls are never retried by this
// package.
//
// # Timeouts
//
// Each API call is bounded by the request timeout from config.Timeouts
// (HCLOUD_TIMEOUT_REQUEST, default 60s). Waiting for images to settle is the
// caller's concern.
//
// # Example Usage
//
//	client := hcloud.NewRealClient(token, hcloud.WithEndpoint(endpoint))
//	reconciler := snapshot.NewReconciler(client)
//	res, err := reconciler.Reconcile(ctx, req)
package hcloud
