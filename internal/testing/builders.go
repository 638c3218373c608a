package testing

import (
	"maps"
	"time"

	"github.com/imamik/snapimage/internal/snapshot"
)

// RequestBuilder provides a fluent interface for constructing test requests.
// Each method returns a new builder (immutable) for chaining.
type RequestBuilder struct {
	req snapshot.Request
}

// NewRequestBuilder creates a RequestBuilder for a present request with defaults.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		req: snapshot.Request{
			InstanceID:  "srv-1",
			ImageName:   "snap-A",
			State:       snapshot.StatePresent,
			WaitTimeout: 300 * time.Second,
		},
	}
}

// Present targets the present state for a server and image name.
func (b *RequestBuilder) Present(instanceID, imageName string) *RequestBuilder {
	nb := b.clone()
	nb.req.State = snapshot.StatePresent
	nb.req.InstanceID = instanceID
	nb.req.ImageName = imageName
	return nb
}

// Absent targets the absent state for an image name.
func (b *RequestBuilder) Absent(imageName string) *RequestBuilder {
	nb := b.clone()
	nb.req.State = snapshot.StateAbsent
	nb.req.InstanceID = ""
	nb.req.ImageName = imageName
	return nb
}

// WithWait enables waiting with the given timeout.
func (b *RequestBuilder) WithWait(timeout time.Duration) *RequestBuilder {
	nb := b.clone()
	nb.req.Wait = true
	nb.req.WaitTimeout = timeout
	return nb
}

// WithBoundCreateWait applies the wait timeout to the create path.
func (b *RequestBuilder) WithBoundCreateWait() *RequestBuilder {
	nb := b.clone()
	nb.req.BoundCreateWait = true
	return nb
}

// WithMetadata sets request metadata.
func (b *RequestBuilder) WithMetadata(meta map[string]string) *RequestBuilder {
	nb := b.clone()
	nb.req.Metadata = maps.Clone(meta)
	return nb
}

// Build returns the request.
func (b *RequestBuilder) Build() snapshot.Request {
	return b.clone().req
}

func (b *RequestBuilder) clone() *RequestBuilder {
	c := *b
	c.req.Metadata = maps.Clone(b.req.Metadata)
	return &c
}

// ImageBuilder provides a fluent interface for constructing observed images.
type ImageBuilder struct {
	img snapshot.Image
}

// NewImage creates an ImageBuilder with the given id and name.
func NewImage(id, name string) *ImageBuilder {
	return &ImageBuilder{
		img: snapshot.Image{
			ID:      id,
			Name:    name,
			Status:  snapshot.StatusSaving,
			Created: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			MinDisk: 20,
		},
	}
}

// WithStatus sets the image status.
func (b *ImageBuilder) WithStatus(s snapshot.Status) *ImageBuilder {
	nb := *b
	nb.img.Status = s
	return &nb
}

// WithServer sets the server the image was created from.
func (b *ImageBuilder) WithServer(id string) *ImageBuilder {
	nb := *b
	nb.img.ServerID = id
	return &nb
}

// WithProgress sets the creation progress.
func (b *ImageBuilder) WithProgress(p int) *ImageBuilder {
	nb := *b
	nb.img.Progress = p
	return &nb
}

// Build returns the image.
func (b *ImageBuilder) Build() snapshot.Image {
	return b.img
}

// Ptr returns a pointer to a copy of the image.
func (b *ImageBuilder) Ptr() *snapshot.Image {
	img := b.img
	return &img
}
