package module

import (
	"encoding/json"
	"io"
	"time"

	"github.com/samber/lo"

	"github.com/imamik/snapimage/internal/snapshot"
	"github.com/imamik/snapimage/internal/util/ptr"
)

// ImageOutput describes the image produced by a create.
type ImageOutput struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Status   snapshot.Status   `json:"status"`
	Created  string            `json:"created,omitempty"`
	Progress int               `json:"progress"`
	MinDisk  int               `json:"minDisk"`
	MinRAM   int               `json:"minRam"`
	Links    []snapshot.Link   `json:"links"`
	Metadata map[string]string `json:"metadata"`
	Server   string            `json:"server,omitempty"`
}

// DeletedImage describes one image touched by a delete.
type DeletedImage struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Success *string `json:"success"`
	Error   *string `json:"error"`
}

// Response is the document written to stdout.
type Response struct {
	Changed bool            `json:"changed"`
	Action  snapshot.Action `json:"action,omitempty"`
	Image   *ImageOutput    `json:"image,omitempty"`
	Images  []DeletedImage  `json:"images,omitempty"`
	Success *string         `json:"success,omitempty"`
	Error   *string         `json:"error,omitempty"`
	Failed  bool            `json:"failed,omitempty"`
	Msg     string          `json:"msg,omitempty"`

	hasResult bool
}

// NewResponse renders a report.
func NewResponse(rep snapshot.Report) Response {
	resp := Response{Failed: rep.Failed, Msg: rep.Msg}
	res := rep.Result
	if res == nil {
		return resp
	}

	resp.hasResult = true
	resp.Changed = res.Changed
	resp.Action = res.Action
	resp.Success = ptr.NonEmpty(res.Success)
	resp.Error = ptr.NonEmpty(res.Error)

	switch res.Action {
	case snapshot.ActionCreate:
		if len(res.Images) > 0 {
			resp.Image = imageOutput(res.Images[0].Image)
		}
	case snapshot.ActionDelete:
		resp.Images = lo.Map(res.Images, func(img snapshot.AffectedImage, _ int) DeletedImage {
			return DeletedImage{
				ID:      img.Image.ID,
				Name:    img.Image.Name,
				Success: ptr.NonEmpty(img.Success),
				Error:   ptr.NonEmpty(img.Error),
			}
		})
	}
	return resp
}

// FailResponse renders a failure that happened before reconciliation.
func FailResponse(err error) Response {
	return Response{Failed: true, Msg: err.Error()}
}

// MarshalJSON keeps success, error and images present whenever a result
// was produced, so unset outcomes are emitted as null.
func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	if !r.hasResult {
		return json.Marshal(plain(r))
	}

	type withResult struct {
		plain
		Images  *[]DeletedImage `json:"images,omitempty"`
		Success *string         `json:"success"`
		Error   *string         `json:"error"`
	}
	out := withResult{plain: plain(r), Success: r.Success, Error: r.Error}
	if r.Action == snapshot.ActionDelete {
		images := r.Images
		if images == nil {
			images = []DeletedImage{}
		}
		out.Images = &images
	}
	return json.Marshal(out)
}

// Write encodes the response as one JSON document.
func (r Response) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}

func imageOutput(img snapshot.Image) *ImageOutput {
	out := &ImageOutput{
		ID:       img.ID,
		Name:     img.Name,
		Status:   img.Status,
		Progress: img.Progress,
		MinDisk:  img.MinDisk,
		MinRAM:   img.MinRAM,
		Links:    img.Links,
		Metadata: img.Metadata,
		Server:   img.ServerID,
	}
	if !img.Created.IsZero() {
		out.Created = img.Created.UTC().Format(time.RFC3339)
	}
	if out.Links == nil {
		out.Links = []snapshot.Link{}
	}
	if out.Metadata == nil {
		out.Metadata = map[string]string{}
	}
	return out
}
