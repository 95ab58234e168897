package db

import (
	"log"
	"os"
	"time"

	"github.com/terraincognita07/ovira/internal/logger"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func newGormLogger(appLogger *logger.Logger) gormlogger.Interface {
	writer := log.New(os.Stdout, "\r\n", log.LstdFlags)
	colorful := true
	if appLogger != nil {
		writer = appLogger.StdLogger(zapcore.WarnLevel)
		colorful = false
	}

	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  colorful,
	})
}
