// Package constants defines shared constants and configuration values
// used throughout navstack.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by navstack.
const (
	DebugEnvVar       = "NAVSTACK_DEBUG"
	LogLevelEnvVar    = "NAVSTACK_LOG_LEVEL"
	MaxProgressEnvVar = "NAVSTACK_MAX_PROGRESS"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// ZLevelStep is the z-order distance between two nesting levels. Surfaces at
// the same level are numbered upward from the level's base, so a level may
// hold at most ZLevelStep surfaces before colliding with the next.
const ZLevelStep = 1000

// Surface id suffixes for materializing containers.
const (
	WrapperSuffix = "-wrapper"
	ContentInfix  = "-content-"
)

// Predictive back defaults.
const (
	DefaultMaxBackProgress = 0.25                   // Visual progress ceiling while tracking
	DefaultCommitDuration  = 200 * time.Millisecond // Completion animation after commit
	DefaultCancelDuration  = 150 * time.Millisecond // Return animation after cancel
	DefaultBackWidth       = 1080.0                 // Horizontal travel reference in pixels
	DefaultBackMinScale    = 0.9                    // Scale of the exiting surface at progress 1
)

// Transition defaults.
const (
	DefaultPushDuration      = 300 * time.Millisecond
	DefaultPopDuration       = 300 * time.Millisecond
	DefaultTabSwitchDuration = 200 * time.Millisecond
	DefaultCrossFadeDuration = 250 * time.Millisecond
)

// Metadata keys attached to flattened surfaces.
const (
	MetaKind        = "kind"
	MetaKey         = "key"
	MetaDestination = "destination"
	MetaBranch      = "branch"
	MetaRole        = "role"
	MetaContainer   = "container"
)
