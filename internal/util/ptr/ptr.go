// Package ptr provides helper functions for creating pointers to values.
package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T { return &v }

// NonEmpty returns a pointer to s, or nil when s is empty.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
