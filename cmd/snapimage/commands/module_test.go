package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/snapimage/cmd/snapimage/handlers"
)

func TestModule(t *testing.T) {
	cmd := Module(&handlers.GlobalOptions{})

	require.NotNil(t, cmd)
	assert.Equal(t, "module ARGS_FILE", cmd.Use)
	assert.Contains(t, cmd.Long, "wait_timeout")
	assert.Contains(t, cmd.Long, "bound_create_wait")
	assert.NoError(t, cmd.Args(cmd, []string{"args.json"}))
	assert.Error(t, cmd.Args(cmd, nil))
}
