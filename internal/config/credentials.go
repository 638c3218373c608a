package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingToken is returned when no API token can be found.
var ErrMissingToken = errors.New("no API token: set api_token, a credentials file, or HCLOUD_TOKEN")

// Credentials identify the caller to the cloud API.
type Credentials struct {
	Token    string `yaml:"token"`
	Endpoint string `yaml:"endpoint"`
}

// CredentialSource carries explicitly provided credential settings.
type CredentialSource struct {
	Token    string
	File     string
	Endpoint string
}

// LoadCredentialsFile reads credentials from a YAML file:
//
//	token: <api token>
//	endpoint: https://api.hetzner.cloud/v1  # optional
func LoadCredentialsFile(path string) (*Credentials, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials file %s: %w", path, err)
	}
	creds.Token = strings.TrimSpace(creds.Token)
	creds.Endpoint = strings.TrimSpace(creds.Endpoint)

	return &creds, nil
}

// ResolveCredentials merges credential sources. Explicit values win over the
// credentials file, which wins over HCLOUD_TOKEN and HCLOUD_ENDPOINT.
func ResolveCredentials(src CredentialSource) (*Credentials, error) {
	creds := &Credentials{
		Token:    os.Getenv("HCLOUD_TOKEN"),
		Endpoint: os.Getenv("HCLOUD_ENDPOINT"),
	}

	if src.File != "" {
		fromFile, err := LoadCredentialsFile(src.File)
		if err != nil {
			return nil, err
		}
		if fromFile.Token != "" {
			creds.Token = fromFile.Token
		}
		if fromFile.Endpoint != "" {
			creds.Endpoint = fromFile.Endpoint
		}
	}

	if src.Token != "" {
		creds.Token = src.Token
	}
	if src.Endpoint != "" {
		creds.Endpoint = src.Endpoint
	}

	if creds.Token == "" {
		return nil, ErrMissingToken
	}
	return creds, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
