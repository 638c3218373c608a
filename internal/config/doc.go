// Package config resolves runtime settings for snapshot reconciliation.
//
// [LoadTimeouts] reads wait and request timeouts from the environment, and
// [ResolveCredentials] finds the API token and endpoint from explicit values,
// a YAML credentials file, or the environment, in that order.
package config
