package logger

import (
	"go.uber.org/zap"

	"github.com/dropDatabas3/studyhub/internal/util"
)

// ---------------------------------------------------------------------------
// HTTP
// ---------------------------------------------------------------------------

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

// ---------------------------------------------------------------------------
// Domain
// ---------------------------------------------------------------------------

// UserID tags the authenticated or affected user.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// Email tags an account email, masked.
func Email(v string) zap.Field { return zap.String("email", util.MaskEmail(v)) }

// NoteID tags an owner-scoped note.
func NoteID(v string) zap.Field { return zap.String("note_id", v) }

// Reason tags why a request was rejected (token_missing, token_expired...).
func Reason(v string) zap.Field { return zap.String("reason", v) }

// ---------------------------------------------------------------------------
// System
// ---------------------------------------------------------------------------

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }

// Layer is controller, service or repository.
func Layer(v string) zap.Field { return zap.String("layer", v) }

func Driver(v string) zap.Field { return zap.String("driver", v) }
func Err(err error) zap.Field   { return zap.Error(err) }

func Any(key string, v any) zap.Field   { return zap.Any(key, v) }
func String(key, v string) zap.Field    { return zap.String(key, v) }
func Int(key string, v int) zap.Field   { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
