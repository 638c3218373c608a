package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/snapimage/internal/config"
	"github.com/imamik/snapimage/internal/logging"
	"github.com/imamik/snapimage/internal/snapshot"
	snaptest "github.com/imamik/snapimage/internal/testing"
)

// saveAndRestoreFactories saves the current factory functions and installs
// test doubles backed by fixture. It returns the buffer receiving stdout.
func saveAndRestoreFactories(t *testing.T, fixture snapshot.Backend) *bytes.Buffer {
	t.Helper()

	origNewBackend := newBackend
	origNewLogger := newLogger
	origIsInteractive := isInteractive
	origConfirm := confirmDeletion
	origStdout := stdout

	t.Cleanup(func() {
		newBackend = origNewBackend
		newLogger = origNewLogger
		isInteractive = origIsInteractive
		confirmDeletion = origConfirm
		stdout = origStdout
	})

	t.Setenv("HCLOUD_TOKEN", "test-token")
	t.Setenv("HCLOUD_POLL_INTERVAL", "1ms")

	newBackend = func(_ *config.Credentials, _ *config.Timeouts) snapshot.Backend {
		return fixture
	}
	newLogger = func(logging.Options) (logr.Logger, func(), error) {
		return logr.Discard(), func() {}, nil
	}
	isInteractive = func() bool { return false }
	confirmDeletion = func(context.Context, string, []snapshot.Image) (bool, error) {
		t.Fatal("confirmation prompt should not be shown")
		return false, nil
	}

	buf := &bytes.Buffer{}
	stdout = buf
	return buf
}

func decodeJSON(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestCreate_Success(t *testing.T) {
	fixture := snaptest.NewBackendFixture().
		WithServer("srv-1").
		WithCreatedImage("img-9", snapshot.StatusSaving, snapshot.StatusActive)
	buf := saveAndRestoreFactories(t, fixture)

	err := Create(context.Background(), GlobalOptions{}, CreateOptions{
		InstanceID: "srv-1",
		Name:       "snap-A",
		Wait:       true,
		Output:     OutputJSON,
	})
	require.NoError(t, err)

	out := decodeJSON(t, buf)
	assert.Equal(t, true, out["changed"])
	assert.Equal(t, "create", out["action"])
	assert.Equal(t, "ACTIVE", out["success"])
	assert.Nil(t, out["error"])
	image := out["image"].(map[string]any)
	assert.Equal(t, "img-9", image["id"])
}

func TestCreate_ImageError(t *testing.T) {
	fixture := snaptest.NewBackendFixture().
		WithServer("srv-1").
		WithCreatedImage("img-9", snapshot.StatusSaving, snapshot.StatusError)
	buf := saveAndRestoreFactories(t, fixture)

	err := Create(context.Background(), GlobalOptions{}, CreateOptions{
		InstanceID: "srv-1",
		Name:       "snap-A",
		Wait:       true,
		Output:     OutputText,
	})
	require.EqualError(t, err, snapshot.MsgCreateFailed)
	assert.Contains(t, buf.String(), "img-9")
	assert.Contains(t, buf.String(), "ERROR")
}

func TestCreate_MissingServer(t *testing.T) {
	buf := saveAndRestoreFactories(t, snaptest.NewBackendFixture())

	err := Create(context.Background(), GlobalOptions{}, CreateOptions{
		InstanceID: "srv-404",
		Name:       "snap-A",
		Output:     OutputText,
	})
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
	assert.Contains(t, buf.String(), "is not found")
}

func TestCreate_MissingToken(t *testing.T) {
	saveAndRestoreFactories(t, snaptest.NewBackendFixture())
	t.Setenv("HCLOUD_TOKEN", "")

	err := Create(context.Background(), GlobalOptions{}, CreateOptions{InstanceID: "1", Name: "x", Output: OutputText})
	assert.ErrorIs(t, err, config.ErrMissingToken)
}

func TestCreate_InvalidOutput(t *testing.T) {
	saveAndRestoreFactories(t, snaptest.NewBackendFixture())

	err := Create(context.Background(), GlobalOptions{}, CreateOptions{InstanceID: "1", Name: "x", Output: "yaml"})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestDelete_WaitsForAll(t *testing.T) {
	fixture := snaptest.NewBackendFixture().WithImages(
		snaptest.NewImage("a", "snap-A").WithStatus(snapshot.StatusActive).Build(),
		snaptest.NewImage("b", "snap-B").WithStatus(snapshot.StatusActive).Build(),
		snaptest.NewImage("c", "snap-A").WithStatus(snapshot.StatusActive).Build(),
	)
	buf := saveAndRestoreFactories(t, fixture)

	err := Delete(context.Background(), GlobalOptions{}, DeleteOptions{
		Name:   "snap-A",
		Wait:   true,
		Yes:    true,
		Output: OutputJSON,
	})
	require.NoError(t, err)

	out := decodeJSON(t, buf)
	assert.Equal(t, true, out["changed"])
	assert.Equal(t, "DELETED", out["success"])
	assert.Len(t, out["images"], 2)
	assert.Len(t, fixture.Images(), 1)
}

func TestDelete_NothingToDelete(t *testing.T) {
	buf := saveAndRestoreFactories(t, snaptest.NewBackendFixture())

	err := Delete(context.Background(), GlobalOptions{}, DeleteOptions{Name: "snap-A", Output: OutputText})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No matching images")
}

func TestDelete_ConfirmationDeclined(t *testing.T) {
	fixture := snaptest.NewBackendFixture().WithImages(snaptest.NewImage("a", "snap-A").Build())
	saveAndRestoreFactories(t, fixture)

	var prompted []snapshot.Image
	isInteractive = func() bool { return true }
	confirmDeletion = func(_ context.Context, name string, images []snapshot.Image) (bool, error) {
		assert.Equal(t, "snap-A", name)
		prompted = images
		return false, nil
	}

	err := Delete(context.Background(), GlobalOptions{}, DeleteOptions{Name: "snap-A", Output: OutputText})
	assert.ErrorIs(t, err, ErrDeletionCancelled)
	require.Len(t, prompted, 1)
	assert.Equal(t, "a", prompted[0].ID)
	assert.Zero(t, fixture.Calls["DeleteImage"])
}

func TestDelete_ConfirmationAccepted(t *testing.T) {
	fixture := snaptest.NewBackendFixture().WithImages(snaptest.NewImage("a", "snap-A").Build())
	saveAndRestoreFactories(t, fixture)

	isInteractive = func() bool { return true }
	confirmDeletion = func(context.Context, string, []snapshot.Image) (bool, error) {
		return true, nil
	}

	err := Delete(context.Background(), GlobalOptions{}, DeleteOptions{Name: "snap-A", Output: OutputText})
	require.NoError(t, err)
	assert.Equal(t, 1, fixture.Calls["DeleteImage"])
}

func TestDelete_FailFast(t *testing.T) {
	fixture := snaptest.NewBackendFixture().WithImages(
		snaptest.NewImage("a", "snap-A").Build(),
		snaptest.NewImage("b", "snap-A").Build(),
		snaptest.NewImage("c", "snap-A").Build(),
	)
	fixture.DeleteErr["b"] = errors.New("image is protected")
	buf := saveAndRestoreFactories(t, fixture)

	err := Delete(context.Background(), GlobalOptions{}, DeleteOptions{Name: "snap-A", Yes: true, Output: OutputJSON})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image is protected")
	assert.Equal(t, 2, fixture.Calls["DeleteImage"])

	out := decodeJSON(t, buf)
	assert.Equal(t, true, out["failed"])
	assert.Equal(t, true, out["changed"])
	assert.Len(t, out["images"], 1)
}

func TestCreate_WritesMetricsFile(t *testing.T) {
	fixture := snaptest.NewBackendFixture().
		WithServer("srv-1").
		WithCreatedImage("img-9", snapshot.StatusActive)
	saveAndRestoreFactories(t, fixture)

	path := filepath.Join(t.TempDir(), "snapimage.prom")
	err := Create(context.Background(), GlobalOptions{MetricsFile: path}, CreateOptions{
		InstanceID: "srv-1",
		Name:       "snap-A",
		Output:     OutputText,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `snapimage_reconcile_total{action="create",result="success"} 1`)
}
