package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Business errors are returned to callers,
// not logged; this logger covers startup, request access logs and the
// event pipeline.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
