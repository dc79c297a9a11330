package utils

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

var hookOnce sync.Once

type appNameHook struct {
	appName string
}

// Levels implements logrus.Hook interface.
func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook interface.
func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}

// InitLogger configures the shared Logger from LOG_LEVEL and LOG_FORMAT.
// The app-name prefix hook is installed once per process.
func InitLogger(appName string) {
	Logger.SetOutput(os.Stdout)

	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	hookOnce.Do(func() {
		Logger.AddHook(&appNameHook{appName})
	})
}
