package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/imamik/snapimage/internal/snapshot"
)

// BackendFixture is an in-memory snapshot.Backend whose images walk through
// scripted status sequences, one step per lookup.
type BackendFixture struct {
	mu sync.Mutex

	servers map[string]bool
	images  []*scriptedImage
	nextID  string
	script  []snapshot.Status

	// DeleteErr, when set for an image id, is returned by DeleteImage.
	DeleteErr map[string]error
	// GoneAfter is the number of lookups after deletion before an image
	// stops being found. Negative means never.
	GoneAfter int

	Calls map[string]int
}

type scriptedImage struct {
	img     snapshot.Image
	script  []snapshot.Status
	deleted bool
	lookups int
}

// NewBackendFixture creates an empty fixture.
func NewBackendFixture() *BackendFixture {
	return &BackendFixture{
		servers:   make(map[string]bool),
		DeleteErr: make(map[string]error),
		Calls:     make(map[string]int),
	}
}

var _ snapshot.Backend = (*BackendFixture)(nil)

// WithServer registers an existing server.
func (f *BackendFixture) WithServer(id string) *BackendFixture {
	f.servers[id] = true
	return f
}

// WithCreatedImage sets the id CreateImage returns and the statuses the new
// image reports on successive lookups. The last status repeats.
func (f *BackendFixture) WithCreatedImage(id string, statuses ...snapshot.Status) *BackendFixture {
	f.nextID = id
	f.script = statuses
	return f
}

// WithImages adds existing images.
func (f *BackendFixture) WithImages(images ...snapshot.Image) *BackendFixture {
	for _, img := range images {
		f.images = append(f.images, &scriptedImage{img: img})
	}
	return f
}

// Images returns the images the fixture still reports.
func (f *BackendFixture) Images() []snapshot.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []snapshot.Image
	for _, si := range f.images {
		if !si.deleted {
			out = append(out, si.img)
		}
	}
	return out
}

// GetServer implements snapshot.Backend.
func (f *BackendFixture) GetServer(_ context.Context, id string) (*snapshot.Server, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["GetServer"]++
	if !f.servers[id] {
		return nil, snapshot.ErrNotFound
	}
	return &snapshot.Server{ID: id, Name: "server-" + id, Status: "running"}, nil
}

// CreateImage implements snapshot.Backend.
func (f *BackendFixture) CreateImage(_ context.Context, serverID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["CreateImage"]++
	if f.nextID == "" {
		return "", fmt.Errorf("no image scripted for server %s", serverID)
	}
	first := snapshot.StatusSaving
	if len(f.script) > 0 {
		first = f.script[0]
	}
	img := NewImage(f.nextID, name).WithServer(serverID).WithStatus(first).Build()
	f.images = append(f.images, &scriptedImage{img: img, script: f.script})
	return f.nextID, nil
}

// GetImage implements snapshot.Backend. Each call advances the image's script.
func (f *BackendFixture) GetImage(_ context.Context, id string) (*snapshot.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["GetImage"]++
	si := f.find(id)
	if si == nil {
		return nil, snapshot.ErrNotFound
	}
	si.lookups++
	if si.deleted {
		if f.GoneAfter >= 0 && si.lookups > f.GoneAfter {
			return nil, snapshot.ErrNotFound
		}
		img := si.img
		return &img, nil
	}
	if n := len(si.script); n > 0 {
		step := si.lookups - 1
		if step >= n {
			step = n - 1
		}
		si.img.Status = si.script[step]
	}
	img := si.img
	return &img, nil
}

// ListImages implements snapshot.Backend.
func (f *BackendFixture) ListImages(_ context.Context) ([]snapshot.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["ListImages"]++
	var out []snapshot.Image
	for _, si := range f.images {
		if !si.deleted {
			out = append(out, si.img)
		}
	}
	return out, nil
}

// DeleteImage implements snapshot.Backend.
func (f *BackendFixture) DeleteImage(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["DeleteImage"]++
	if err := f.DeleteErr[id]; err != nil {
		return err
	}
	si := f.find(id)
	if si == nil || si.deleted {
		return snapshot.ErrNotFound
	}
	si.deleted = true
	si.lookups = 0
	return nil
}

func (f *BackendFixture) find(id string) *scriptedImage {
	for _, si := range f.images {
		if si.img.ID == id {
			return si
		}
	}
	return nil
}
