package navstack

import (
	"io"
	"log/slog"
	"os"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
	"github.com/BrandonKowalski/navstack/pkg/navstack/gesture"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
	"github.com/BrandonKowalski/navstack/pkg/navstack/scene"
)

// New configures logging from cfg and returns a scene built with the
// configured animation, gesture and layout settings. opts are applied after
// the configured ones and take precedence.
func New(content scene.ContentResolver, cfg Config, opts ...scene.Option) *scene.Scene {
	ConfigureLogging(cfg.Log)

	base := []scene.Option{
		scene.WithLogger(internal.GetInternalLogger()),
		scene.WithFlattener(flatten.New(cfg.FlattenOptions())),
		scene.WithLayout(cfg.DefaultLayout()),
		scene.WithWidth(cfg.Gesture.Width),
		scene.WithGesture(gesture.WithConfig(cfg.GestureConfig())),
	}
	return scene.New(content, append(base, opts...)...)
}

// ConfigureLogging applies the [log] section. Internal logging is raised to
// debug when ENVIRONMENT=DEV or NAVSTACK_DEBUG is set, and is error-only
// otherwise.
func ConfigureLogging(cfg LogConfig) {
	if cfg.Path != "" {
		internal.SetLogPath(cfg.Path)
	}
	internal.SetRawLogLevel(cfg.Level)

	if constants.IsDevMode() || os.Getenv(constants.DebugEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before the first logger is requested to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

func SetRawLogLevel(rawLevel string) {
	internal.SetRawLogLevel(rawLevel)
}

// CloseLogger closes the log file, if one was opened.
func CloseLogger() {
	internal.CloseLogger()
}

// SetLogOutput sends logs to w instead of stdout and the log file. Call
// before the first logger is requested to take effect.
func SetLogOutput(w io.Writer) {
	internal.SetLogOutput(w)
}
