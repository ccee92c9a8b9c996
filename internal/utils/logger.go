package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.DateTime})
}

// ConfigureLogger sets the level from config and switches to JSON output in production.
func ConfigureLogger(level string, production bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %v", level, err)
	}
	Logger.SetLevel(lvl)
	if production {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func LogDebug(format string, v ...interface{}) {
	Logger.WithField("caller", caller()).Debugf(format, v...)
}

func LogInfo(format string, v ...interface{}) {
	Logger.Infof(format, v...)
}

func LogError(format string, v ...interface{}) {
	Logger.WithField("caller", caller()).Errorf(format, v...)
}

func LogWarning(format string, v ...interface{}) {
	Logger.WithField("caller", caller()).Warnf(format, v...)
}

func TimeTrack(start time.Time, name string) {
	LogDebug("%s took %s", name, time.Since(start))
}
