package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hcloud.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCredentialsFile(t *testing.T) {
	path := writeCredentials(t, "token: file-token\nendpoint: http://localhost:4000/v1\n")

	creds, err := LoadCredentialsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", creds.Token)
	assert.Equal(t, "http://localhost:4000/v1", creds.Endpoint)
}

func TestLoadCredentialsFile_Missing(t *testing.T) {
	_, err := LoadCredentialsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read credentials file")
}

func TestLoadCredentialsFile_InvalidYAML(t *testing.T) {
	path := writeCredentials(t, "token: [unterminated\n")

	_, err := LoadCredentialsFile(path)
	assert.ErrorContains(t, err, "failed to unmarshal credentials file")
}

func TestLoadCredentialsFile_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".hcloud.yaml"), []byte("token: home-token\n"), 0o600))

	creds, err := LoadCredentialsFile("~/.hcloud.yaml")
	require.NoError(t, err)
	assert.Equal(t, "home-token", creds.Token)
}

func TestResolveCredentials_Precedence(t *testing.T) {
	file := writeCredentials(t, "token: file-token\nendpoint: http://file/v1\n")

	tests := []struct {
		name         string
		envToken     string
		src          CredentialSource
		wantToken    string
		wantEndpoint string
	}{
		{
			name:      "environment only",
			envToken:  "env-token",
			wantToken: "env-token",
		},
		{
			name:         "file beats environment",
			envToken:     "env-token",
			src:          CredentialSource{File: file},
			wantToken:    "file-token",
			wantEndpoint: "http://file/v1",
		},
		{
			name:         "explicit beats file",
			envToken:     "env-token",
			src:          CredentialSource{Token: "flag-token", File: file, Endpoint: "http://flag/v1"},
			wantToken:    "flag-token",
			wantEndpoint: "http://flag/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HCLOUD_TOKEN", tt.envToken)
			t.Setenv("HCLOUD_ENDPOINT", "")

			creds, err := ResolveCredentials(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, creds.Token)
			assert.Equal(t, tt.wantEndpoint, creds.Endpoint)
		})
	}
}

func TestResolveCredentials_MissingToken(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "")

	_, err := ResolveCredentials(CredentialSource{})
	assert.ErrorIs(t, err, ErrMissingToken)
}
