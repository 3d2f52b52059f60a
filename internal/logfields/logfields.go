package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyReport     = "report"
	KeyTool       = "tool"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeySuccess    = "success"
	KeyRows       = "rows"
	KeySkipped    = "skipped"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Report(name string) slog.Attr    { return slog.String(KeyReport, name) }
func Tool(name string) slog.Attr      { return slog.String(KeyTool, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Success(ok bool) slog.Attr       { return slog.Bool(KeySuccess, ok) }
func Rows(n int) slog.Attr            { return slog.Int(KeyRows, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration converts d to the canonical millisecond field.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d) / float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
