// Package convert provides helpers for fast binary conversion of common go types.
//
// Conversion operations are essentially unsafe and avoid the use of memcpy().
// They are used on the hot path of the digest cache, where badger keys are
// produced from catalog paths on every lookup.
package convert
