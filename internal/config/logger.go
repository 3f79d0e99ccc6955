package config

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds the process logger; "debug" switches to the development config
func NewLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
