package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	LevelEnv  = "LOG_LEVEL"
	FormatEnv = "LOG_FORMAT"
)

// New builds the process logger. LOG_LEVEL picks the level (info when unset
// or unparseable); LOG_FORMAT=json switches to JSON output.
func New(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(parseLevel(os.Getenv(LevelEnv)))

	if strings.EqualFold(strings.TrimSpace(os.Getenv(FormatEnv)), "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return log
}

func parseLevel(value string) logrus.Level {
	if strings.TrimSpace(value) == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(value)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
