package observability

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
)

// Log is a zap SugaredLogger taking key/value pairs, with sensitive keys
// redacted before they reach the encoder.
type Log struct {
	sugar *zap.SugaredLogger
}

var (
	mu     sync.RWMutex
	logger = mustBuild("development")
)

// New builds a logger for mode: "production" (or "prod") logs JSON,
// anything else uses zap's development console config.
func New(mode string) (*Log, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	case "test", "nop":
		return &Log{sugar: zap.NewNop().Sugar()}, nil
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Log{sugar: z.Sugar()}, nil
}

func mustBuild(mode string) *Log {
	l, err := New(mode)
	if err != nil {
		return &Log{sugar: zap.NewNop().Sugar()}
	}
	return l
}

// Init replaces the global logger.
func Init(mode string) error {
	l, err := New(mode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// Logger returns the global logger.
func Logger() *Log {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *Log {
	return Logger().With(kv...)
}

// WithRequestID stores a request_id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// LoggerFromContext adds request_id if present.
func LoggerFromContext(ctx context.Context) *Log {
	reqID := RequestIDFromContext(ctx)
	if reqID == "" {
		return Logger()
	}
	return Logger().With("request_id", reqID)
}

func (l *Log) Sync() {
	_ = l.sugar.Sync()
}

func (l *Log) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, sanitizeKVs(kv)...) }
func (l *Log) Info(msg string, kv ...any)  { l.sugar.Infow(msg, sanitizeKVs(kv)...) }
func (l *Log) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, sanitizeKVs(kv)...) }
func (l *Log) Error(msg string, kv ...any) { l.sugar.Errorw(msg, sanitizeKVs(kv)...) }

func (l *Log) With(kv ...any) *Log {
	return &Log{sugar: l.sugar.With(sanitizeKVs(kv)...)}
}

// ─────────────────────────────────────────
// Redaction
// ─────────────────────────────────────────

var (
	redactOnce       sync.Once
	redactionEnabled bool
	hashSalt         string
)

func redactionOn() bool {
	redactOnce.Do(func() {
		switch strings.TrimSpace(strings.ToLower(os.Getenv("LOG_REDACTION_ENABLED"))) {
		case "0", "false", "no", "off":
			redactionEnabled = false
		default:
			redactionEnabled = true
		}
		hashSalt = strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))
	})
	return redactionEnabled
}

func sanitizeKVs(kv []any) []any {
	if len(kv) == 0 || !redactionOn() {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, SanitizeValue(key, kv[i+1]))
	}
	return out
}

// SanitizeValue returns what is logged for val under key.
func SanitizeValue(key string, val any) any {
	k := strings.TrimSpace(strings.ToLower(key))
	switch {
	case k == "":
		return val
	case isRedactKey(k):
		return "[REDACTED]"
	case isHashKey(k):
		return hashValue(val)
	default:
		return val
	}
}

func isRedactKey(key string) bool {
	for _, s := range []string{"token", "authorization", "password", "secret", "api_key", "apikey", "email", "dsn"} {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

func isHashKey(key string) bool {
	return strings.Contains(key, "session_id")
}

func hashValue(val any) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	h := sha256.New()
	if hashSalt != "" {
		_, _ = h.Write([]byte(hashSalt))
	}
	_, _ = h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
