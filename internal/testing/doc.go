// Package testing provides test utilities, builders, and fixtures for snapshot tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - RequestBuilder: Fluent builder for reconciliation requests
//   - ImageBuilder: Fluent builder for observed images
//   - MockBackend: Shared testify mock of snapshot.Backend
//   - BackendFixture: Scripted in-memory backend for status transitions
//
// Usage:
//
//	req := testing.NewRequestBuilder().
//	    Present("srv-1", "snap-A").
//	    WithWait(time.Minute).
//	    Build()
//
//	fixture := testing.NewBackendFixture().
//	    WithServer("srv-1").
//	    WithCreatedImage("img-9", snapshot.StatusSaving, snapshot.StatusActive)
package testing
