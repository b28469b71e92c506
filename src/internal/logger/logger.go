package logger

import (
	"encoding/json"
	"log"
	"strings"
	"sync/atomic"
)

type Fields map[string]any

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var minLevel atomic.Int32

func init() {
	minLevel.Store(int32(LevelInfo))
}

var sensitiveKeys = map[string]struct{}{
	"documentoidentidad":  {},
	"documento_identidad": {},
	"documentid":          {},
	"telefono":            {},
	"phone":               {},
	"email":               {},
	"password":            {},
	"channelkey":          {},
	"channel_key":         {},
	"authorization":       {},
}

// SetLevel accepts debug, info, warn/warning or error. Unknown values
// fall back to info.
func SetLevel(level string) {
	minLevel.Store(int32(ParseLevel(level)))
}

func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func enabled(level Level) bool {
	return int32(level) >= minLevel.Load()
}

func Debug(message string, fields Fields) {
	if !enabled(LevelDebug) {
		return
	}
	log.Printf("DEBUG %s %s", message, fieldsJSON(fields))
}

func Info(message string, fields Fields) {
	if !enabled(LevelInfo) {
		return
	}
	log.Printf("INFO %s %s", message, fieldsJSON(fields))
}

func Warn(message string, err error, fields Fields) {
	if !enabled(LevelWarn) {
		return
	}
	log.Printf("WARN %s %s", message, fieldsJSON(withError(fields, err)))
}

func Error(message string, err error, fields Fields) {
	log.Printf("ERROR %s %s", message, fieldsJSON(withError(fields, err)))
}

func withError(fields Fields, err error) Fields {
	base := Fields{}
	for k, v := range fields {
		base[k] = v
	}
	if err != nil {
		base["error"] = err.Error()
	}
	return base
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func fieldsJSON(fields Fields) string {
	if fields == nil {
		fields = Fields{}
	}

	sanitized := SanitizePayload(fields)
	b, err := json.Marshal(sanitized)
	if err != nil {
		return `{}`
	}

	return string(b)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = maskValue(inner)
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

// maskValue keeps the last two characters of short identifiers so log
// lines stay correlatable without exposing the full value.
func maskValue(value any) any {
	s, ok := value.(string)
	if !ok || len(s) < 6 {
		return "******"
	}
	return "******" + s[len(s)-2:]
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
