package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerSetsLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
	}
	for in, want := range cases {
		l := NewLogger(in)
		if l.GetLevel() != want {
			t.Errorf("NewLogger(%q) level = %v, want %v", in, l.GetLevel(), want)
		}
	}
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	l := NewLogger("verbose")
	if l.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected info level fallback, got %v", l.GetLevel())
	}
}
