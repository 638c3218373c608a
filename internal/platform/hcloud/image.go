package hcloud

import (
	"maps"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/snapimage/internal/snapshot"
)

const imageStatusUnavailable hcloud.ImageStatus = "unavailable"

// toImage converts an API image into the reconciler's view of it.
func (c *RealClient) toImage(image *hcloud.Image) snapshot.Image {
	id := formatID(image.ID)

	name := image.Description
	if name == "" {
		name = image.Name
	}

	img := snapshot.Image{
		ID:       id,
		Name:     name,
		Status:   imageStatus(image),
		Created:  image.Created,
		MinDisk:  int(image.DiskSize),
		Metadata: maps.Clone(image.Labels),
		Links: []snapshot.Link{
			{Rel: "self", Href: c.endpoint + "/images/" + id},
		},
	}
	if img.Status == snapshot.StatusActive {
		img.Progress = 100
	}
	if image.CreatedFrom != nil {
		img.ServerID = formatID(image.CreatedFrom.ID)
	}
	return img
}

func imageStatus(image *hcloud.Image) snapshot.Status {
	if !image.Deleted.IsZero() {
		return snapshot.StatusDeleted
	}
	switch image.Status {
	case hcloud.ImageStatusCreating:
		return snapshot.StatusSaving
	case hcloud.ImageStatusAvailable:
		return snapshot.StatusActive
	case imageStatusUnavailable:
		return snapshot.StatusError
	default:
		return snapshot.StatusUnknown
	}
}
