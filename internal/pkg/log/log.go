package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

const contextKeyRequestID = "request_id"

// Level orders log severities; a message is written when its level is at or below the configured one
type Level int

const (
	LevelSilent Level = iota
	LevelFatal
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	mu     sync.RWMutex
	level  = LevelInfo
	output io.Writer = os.Stdout
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values are LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return LevelSilent
	case "fatal":
		return LevelFatal
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	default:
		return LevelInfo
	}
}

// SetLevel sets the most verbose level that is written
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// SetOutput redirects log output, mainly for tests
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l <= level
}

func write(tag string, msg string) {
	mu.RLock()
	w := output
	mu.RUnlock()
	fmt.Fprintf(w, "%s %s\n", tag, msg)
}

// WithRequestID adds request ID to context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// getRequestID retrieves request ID from context
func getRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// formatLog formats log message with optional request ID
func formatLog(level string, requestID string, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	if requestID != "" {
		return fmt.Sprintf("[%s] [req_id=%s] %s", level, requestID, msg)
	}
	return fmt.Sprintf("[%s] %s", level, msg)
}

var (
	infoTag  = color.New(color.FgWhite, color.BgGreen).SprintFunc()
	warnTag  = color.New(color.FgWhite, color.BgYellow).SprintFunc()
	errorTag = color.New(color.FgRed).SprintFunc()
	debugTag = color.New(color.FgCyan).SprintFunc()
)

// Info log information
func Info(format string, a ...interface{}) {
	if enabled(LevelInfo) {
		write(infoTag("[INFO] "), fmt.Sprintf(format, a...))
	}
}

// InfoWithContext logs information with context (includes request ID if available)
func InfoWithContext(ctx context.Context, format string, a ...interface{}) {
	if enabled(LevelInfo) {
		write(infoTag("[INFO] "), formatLog("INFO", getRequestID(ctx), format, a...))
	}
}

// Warn log warning
func Warn(format string, a ...interface{}) {
	if enabled(LevelWarn) {
		write(warnTag("[WARN] "), fmt.Sprintf(format, a...))
	}
}

// WarnWithContext logs warning with context (includes request ID if available)
func WarnWithContext(ctx context.Context, format string, a ...interface{}) {
	if enabled(LevelWarn) {
		write(warnTag("[WARN] "), formatLog("WARN", getRequestID(ctx), format, a...))
	}
}

// Error log error
func Error(format string, a ...interface{}) {
	if enabled(LevelError) {
		write(errorTag("[Error]"), fmt.Sprintf(format, a...))
	}
}

// ErrorWithContext logs error with context (includes request ID if available)
func ErrorWithContext(ctx context.Context, format string, a ...interface{}) {
	if enabled(LevelError) {
		write(errorTag("[Error]"), formatLog("ERROR", getRequestID(ctx), format, a...))
	}
}

// Debug log debug output
func Debug(format string, a ...interface{}) {
	if enabled(LevelDebug) {
		write(debugTag("[DEBUG]"), fmt.Sprintf(format, a...))
	}
}

// DebugStruct dumps values at debug level
func DebugStruct(a ...interface{}) {
	if enabled(LevelDebug) {
		write(debugTag("[DEBUG]"), spew.Sdump(a...))
	}
}
