// Package snapshot reconciles server snapshot images toward a declared state.
//
// A [Request] declares whether an image with a given name should exist
// (present) or not (absent). The [Reconciler] drives the remote backend toward
// that state with a small set of calls, optionally waiting for the image to
// settle via the status poller, and returns a [Result].
// [NewReport] turns the result into the single success/failure decision the
// caller surfaces.
//
// # Present
//
// The server is resolved first; a missing server fails with [NotFoundError]
// before any image is requested. When waiting, the create path polls until the
// image reports ACTIVE or ERROR. It has no deadline unless
// [Request.BoundCreateWait] is set, in which case WaitTimeout applies as well.
//
// # Absent
//
// Every image whose name equals the requested name is deleted in list order.
// A failed delete stops the batch; the deletions already accepted are still
// reported. When waiting, each deletion is polled until the backend reports the
// image as not found, bounded by WaitTimeout. A timeout marks that image ERROR.
package snapshot
