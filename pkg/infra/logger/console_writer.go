package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors entries to stdout alongside the async file writer so
// container logs stay readable during local runs.
type ConsoleHook struct {
	minLevel logrus.Level
}

func NewConsoleHook(minLevel logrus.Level) *ConsoleHook {
	return &ConsoleHook{minLevel: minLevel}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	fmt.Print(string(line))
	return nil
}

func (h *ConsoleHook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, level := range logrus.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}
