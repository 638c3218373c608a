package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/snapimage/internal/snapshot"
	"github.com/imamik/snapimage/internal/util/ptr"
)

// GetServer returns the server with the given id, or snapshot.ErrNotFound.
func (c *RealClient) GetServer(ctx context.Context, id string) (*snapshot.Server, error) {
	serverID, err := parseID("instance_id", id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	server, _, err := c.client.Server.GetByID(ctx, serverID)
	if err != nil {
		return nil, wrapError("get server", id, err)
	}
	if server == nil {
		return nil, fmt.Errorf("server %s: %w", id, snapshot.ErrNotFound)
	}

	return &snapshot.Server{
		ID:     formatID(server.ID),
		Name:   server.Name,
		Status: string(server.Status),
	}, nil
}

// CreateImage requests a snapshot of the server named by its description.
// Labels are never sent.
func (c *RealClient) CreateImage(ctx context.Context, serverID, name string) (string, error) {
	id, err := parseID("instance_id", serverID)
	if err != nil {
		return "", err
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	result, _, err := c.client.Server.CreateImage(ctx, &hcloud.Server{ID: id}, &hcloud.ServerCreateImageOpts{
		Type:        hcloud.ImageTypeSnapshot,
		Description: ptr.To(name),
	})
	if err != nil {
		return "", wrapError("create image", serverID, err)
	}
	if result.Image == nil {
		return "", &snapshot.BackendError{
			Op:   "create image",
			ID:   serverID,
			Kind: snapshot.KindUnknown,
			Err:  fmt.Errorf("response carries no image"),
		}
	}

	return formatID(result.Image.ID), nil
}

// GetImage returns the image with the given id, or snapshot.ErrNotFound.
func (c *RealClient) GetImage(ctx context.Context, id string) (*snapshot.Image, error) {
	imageID, err := parseID("image_id", id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	image, _, err := c.client.Image.GetByID(ctx, imageID)
	if err != nil {
		return nil, wrapError("get image", id, err)
	}
	if image == nil {
		return nil, fmt.Errorf("image %s: %w", id, snapshot.ErrNotFound)
	}

	img := c.toImage(image)
	return &img, nil
}

// ListImages returns all snapshot images visible to the token.
func (c *RealClient) ListImages(ctx context.Context) ([]snapshot.Image, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	images, err := c.client.Image.AllWithOpts(ctx, hcloud.ImageListOpts{
		Type: []hcloud.ImageType{hcloud.ImageTypeSnapshot},
	})
	if err != nil {
		return nil, wrapError("list images", "", err)
	}

	out := make([]snapshot.Image, 0, len(images))
	for _, image := range images {
		out = append(out, c.toImage(image))
	}
	return out, nil
}

// DeleteImage deletes an image by id. Failures are returned as-is, without retry.
func (c *RealClient) DeleteImage(ctx context.Context, id string) error {
	imageID, err := parseID("image_id", id)
	if err != nil {
		return err
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	if _, err := c.client.Image.Delete(ctx, &hcloud.Image{ID: imageID}); err != nil {
		return wrapError("delete image", id, err)
	}
	return nil
}

func (c *RealClient) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeouts == nil || c.timeouts.Request <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeouts.Request)
}

func parseID(field, id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, &snapshot.ValidationError{Field: field, Message: fmt.Sprintf("must be a numeric id, got %q", id)}
	}
	return n, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
