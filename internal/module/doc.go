// Package module implements the task module protocol: a JSON or YAML
// argument file is read, the request is reconciled, and one JSON document
// describing the outcome is written to stdout.
package module
