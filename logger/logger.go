package logger

import (
	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}

// InitNop installs a no-op logger. Used by tests that do not care about output.
func InitNop() {
	Log = zap.NewNop().Sugar()
}
