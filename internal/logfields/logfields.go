package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyBlockID    = "block_id"
	KeyBlockType  = "block_type"
	KeyMark       = "mark"
	KeyMarkType   = "mark_type"
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyNodeCount  = "nodes"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func BlockID(id string) slog.Attr     { return slog.String(KeyBlockID, id) }
func BlockType(t string) slog.Attr    { return slog.String(KeyBlockType, t) }
func Mark(id string) slog.Attr        { return slog.String(KeyMark, id) }
func MarkType(t string) slog.Attr     { return slog.String(KeyMarkType, t) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func NodeCount(n int) slog.Attr       { return slog.Int(KeyNodeCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
