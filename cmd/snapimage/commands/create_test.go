package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/snapimage/cmd/snapimage/handlers"
)

func TestCreate(t *testing.T) {
	cmd := Create(&handlers.GlobalOptions{})

	require.NotNil(t, cmd)
	assert.Equal(t, "create", cmd.Use)
	assert.Equal(t, "Create a snapshot image of a server", cmd.Short)
	assert.Contains(t, cmd.Long, "--bound-create-wait")
	assert.NotNil(t, cmd.RunE)
}

func TestCreate_Flags(t *testing.T) {
	cmd := Create(&handlers.GlobalOptions{})

	tests := []struct {
		name     string
		defValue string
	}{
		{"instance-id", ""},
		{"name", ""},
		{"meta", "[]"},
		{"wait", "false"},
		{"wait-timeout", "0s"},
		{"bound-create-wait", "false"},
		{"output", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestCreate_RequiredFlags(t *testing.T) {
	cmd := Create(&handlers.GlobalOptions{})

	for _, name := range []string{"instance-id", "name"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag)
		_, required := flag.Annotations["cobra_annotation_bash_completion_one_required_flag"]
		assert.True(t, required, "%s should be required", name)
	}
}

func TestCreate_MetaParsing(t *testing.T) {
	cmd := Create(&handlers.GlobalOptions{})

	require.NoError(t, cmd.Flags().Parse([]string{"--meta", "env=prod", "--meta", "team=web"}))
	meta, err := cmd.Flags().GetStringToString("meta")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": "prod", "team": "web"}, meta)
}
