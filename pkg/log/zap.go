package log

import "go.uber.org/zap"

// ZapLogger adapts a zap logger to the SDK's Logger interface.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger wraps l for use anywhere the SDK accepts a Logger.
func NewZapLogger(l *zap.Logger) ZapLogger {
	return ZapLogger{s: l.Sugar()}
}

func (z ZapLogger) Printf(format string, v ...interface{}) {
	z.s.Infof(format, v...)
}
