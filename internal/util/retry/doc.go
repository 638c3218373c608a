// Package retry provides the fixed-interval polling loop used to wait for
// snapshot images to settle.
//
// The [Poll] function calls a condition until it reports done, optionally bounded
// by a wall-clock deadline or an attempt cap. Condition errors are never retried;
// they end the loop and are returned as-is.
package retry
