package cursorwire

import "github.com/rs/zerolog"

// Logger is a minimal logging interface accepted by the SDK.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// noopLogger discards all logs.
type noopLogger struct{}

func (noopLogger) Debug(string, map[string]any) {}
func (noopLogger) Info(string, map[string]any)  {}
func (noopLogger) Warn(string, map[string]any)  {}
func (noopLogger) Error(string, map[string]any) {}

// ZerologAdapter bridges a zerolog.Logger into the SDK Logger interface.
type ZerologAdapter struct {
	L zerolog.Logger
}

func (a ZerologAdapter) Debug(msg string, fields map[string]any) { a.emit(a.L.Debug(), msg, fields) }
func (a ZerologAdapter) Info(msg string, fields map[string]any)  { a.emit(a.L.Info(), msg, fields) }
func (a ZerologAdapter) Warn(msg string, fields map[string]any)  { a.emit(a.L.Warn(), msg, fields) }
func (a ZerologAdapter) Error(msg string, fields map[string]any) { a.emit(a.L.Error(), msg, fields) }

func (a ZerologAdapter) emit(ev *zerolog.Event, msg string, fields map[string]any) {
	ev.Fields(fields).Msg(msg)
}
