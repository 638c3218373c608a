package hcloud

import (
	"testing"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"

	"github.com/imamik/snapimage/internal/snapshot"
)

func TestImageStatus(t *testing.T) {
	tests := []struct {
		name  string
		image *hcloud.Image
		want  snapshot.Status
	}{
		{"creating", &hcloud.Image{Status: hcloud.ImageStatusCreating}, snapshot.StatusSaving},
		{"available", &hcloud.Image{Status: hcloud.ImageStatusAvailable}, snapshot.StatusActive},
		{"unavailable", &hcloud.Image{Status: "unavailable"}, snapshot.StatusError},
		{"deleted", &hcloud.Image{Status: hcloud.ImageStatusAvailable, Deleted: time.Now()}, snapshot.StatusDeleted},
		{"unknown", &hcloud.Image{Status: "migrating"}, snapshot.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, imageStatus(tt.image))
		})
	}
}

func TestToImage(t *testing.T) {
	client := NewRealClient("test-token", WithEndpoint("https://api.example.com/v1"))

	img := client.toImage(&hcloud.Image{
		ID:          9,
		Name:        "ubuntu-24.04",
		Description: "snap-A",
		Status:      hcloud.ImageStatusCreating,
		DiskSize:    40,
		CreatedFrom: &hcloud.Server{ID: 42},
	})

	assert.Equal(t, "9", img.ID)
	assert.Equal(t, "snap-A", img.Name)
	assert.Equal(t, snapshot.StatusSaving, img.Status)
	assert.Equal(t, 0, img.Progress)
	assert.Equal(t, 40, img.MinDisk)
	assert.Equal(t, 0, img.MinRAM)
	assert.Equal(t, "42", img.ServerID)
	assert.Equal(t, []snapshot.Link{{Rel: "self", Href: "https://api.example.com/v1/images/9"}}, img.Links)
}

func TestToImage_FallsBackToName(t *testing.T) {
	client := NewRealClient("test-token")

	img := client.toImage(&hcloud.Image{ID: 1, Name: "debian-12", Status: hcloud.ImageStatusAvailable})

	assert.Equal(t, "debian-12", img.Name)
	assert.Equal(t, 100, img.Progress)
	assert.Empty(t, img.ServerID)
}
