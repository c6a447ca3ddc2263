package logging

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// LeveledLogger adapts a logrus entry to retryablehttp.LeveledLogger.
type LeveledLogger struct {
	entry *logrus.Entry
}

// NewLeveledLogger returns an adapter writing through entry.
// Its entries are never forwarded to the host.
func NewLeveledLogger(entry *logrus.Entry) *LeveledLogger {
	return &LeveledLogger{entry: entry.WithField(SkipRemote, true)}
}

func (l *LeveledLogger) Error(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Error(msg)
}

func (l *LeveledLogger) Info(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Info(msg)
}

// Debug also receives the per-attempt request lines.
func (l *LeveledLogger) Debug(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Debug(msg)
}

func (l *LeveledLogger) Warn(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Warn(msg)
}

func (l *LeveledLogger) with(kv []any) *logrus.Entry {
	if len(kv) == 0 {
		return l.entry
	}
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = kv[i+1]
	}
	return l.entry.WithFields(fields)
}

var _ retryablehttp.LeveledLogger = (*LeveledLogger)(nil)
