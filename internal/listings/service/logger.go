package service

import (
	"context"
	"log"
	"strings"
	"sync/atomic"

	"github.com/getsentry/sentry-go"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/api/http/middleware"
)

const (
	levelDebug int32 = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel atomic.Int32

func init() {
	minLevel.Store(levelInfo)
}

// SetLogLevel sets the lowest level written by Logger. Unknown values mean info.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		minLevel.Store(levelDebug)
	case "warn":
		minLevel.Store(levelWarn)
	case "error":
		minLevel.Store(levelError)
	default:
		minLevel.Store(levelInfo)
	}
}

// Logger provides structured logging for services
type Logger struct {
	requestID string
	hub       *sentry.Hub
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Logger{requestID: requestID, hub: hub}
}

// LogError logs an error and reports it to Sentry when a client is configured
func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
	if l.hub.Client() != nil {
		l.hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("operation", operation)
			l.hub.CaptureException(err)
		})
	}
}

func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	if minLevel.Load() > levelInfo {
		return
	}
	log.Printf("[info] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	if minLevel.Load() > levelWarn {
		return
	}
	log.Printf("[warn] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
