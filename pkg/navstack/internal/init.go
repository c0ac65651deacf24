// Package internal contains shared infrastructure for navstack packages,
// currently logger setup. Types and functions in this package are not part
// of the public API.
package internal
