// Package logger configures logrus and carries a request-scoped entry on the
// request context.
package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKeyType struct{}

var contextKey = contextKeyType{}

const (
	requestIDKey = "request_id"
	userIDKey    = "user_id"
)

// Init sets up the text formatter and level for all log statements. Unknown levels
// fall back to info.
func Init(level string) {
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	logrus.SetFormatter(formatter)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// Default returns a logger without request fields.
func Default() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

// WithRequestID returns a context carrying a logger tagged with requestID. A new id
// is generated when requestID is empty.
func WithRequestID(ctx context.Context, requestID string) (context.Context, *logrus.Entry) {
	if ctx == nil {
		ctx = context.Background()
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	entry := logrus.WithField(requestIDKey, requestID)
	return context.WithValue(ctx, contextKey, entry), entry
}

// WithUserID adds the authenticated user to the context logger.
func WithUserID(ctx context.Context, userID uint) context.Context {
	entry := FromContext(ctx).WithField(userIDKey, userID)
	return context.WithValue(ctx, contextKey, entry)
}

// FromContext returns the logger from the context, or the default logger.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return Default()
	}
	if entry, ok := ctx.Value(contextKey).(*logrus.Entry); ok {
		return entry
	}
	return Default()
}

// RequestID returns the request id stored on the context logger, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	entry, ok := ctx.Value(contextKey).(*logrus.Entry)
	if !ok {
		return ""
	}
	id, _ := entry.Data[requestIDKey].(string)
	return id
}
