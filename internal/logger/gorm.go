package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GormWriter routes gorm log lines into the global logger at a fixed level
type GormWriter struct {
	Level zapcore.Level
}

// Printf implements gorm's logger.Writer
func (w GormWriter) Printf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	if ce := log.Check(w.Level, msg); ce != nil {
		ce.Write(zap.String("component", "gorm"))
	}
}
