package config

import (
	"go.uber.org/zap"
)

// Logger is a no-op until InitLogger runs, so packages can log unconditionally.
var Logger = zap.NewNop()

// InitLogger picks a development or production zap logger for env.
func InitLogger(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == EnvProduction {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	Logger = l
	Logger.Info("✅ Zap logger initialized", zap.String("env", env))
	return nil
}
