package status

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors log entries into the console file. Debug and trace
// entries stay out. A failed write comes back to logrus, which reports it
// on stderr and carries on.
type ConsoleHook struct {
	Console *Console
}

func NewConsoleHook(c *Console) *ConsoleHook {
	return &ConsoleHook{Console: c}
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
	}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	return h.Console.appendAt(entry.Time, consoleMessage(entry))
}

func consoleMessage(entry *logrus.Entry) string {
	msg := entry.Message
	if entry.Level <= logrus.ErrorLevel && !strings.HasPrefix(msg, "[") {
		msg = "[ERROR] " + msg
	}
	return msg
}
