package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		format     string
		wantLevel  logrus.Level
		wantFormat string
	}{
		{"json debug", "debug", "json", logrus.DebugLevel, "json"},
		{"text warn", "warn", "text", logrus.WarnLevel, "text"},
		{"bad level falls back to info", "chatty", "text", logrus.InfoLevel, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format

			logger := New(cfg)
			if logger.GetLevel() != tt.wantLevel {
				t.Errorf("level = %s, want %s", logger.GetLevel(), tt.wantLevel)
			}

			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			if (tt.wantFormat == "json") != isJSON {
				t.Errorf("formatter = %T, want format %s", logger.Formatter, tt.wantFormat)
			}
		})
	}
}
