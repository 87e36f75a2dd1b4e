package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPort            = "3000"
	defaultROICacheTTL     = 5 * time.Minute
	defaultEditorTimeout   = 10 * time.Second
	defaultStreamKeepAlive = 2 * time.Second
	defaultStreamStale     = 10 * time.Second
)

func appPort() string {
	if port := os.Getenv("APP_PORT"); port != "" {
		return port
	}
	return defaultPort
}

// envDuration parses key with time.ParseDuration, logging and falling back
// on bad input.
func envDuration(log *logrus.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if log != nil {
			log.WithFields(logrus.Fields{
				"key":      key,
				"value":    raw,
				"fallback": fallback.String(),
			}).Warn("Invalid duration in environment, using fallback")
		}
		return fallback
	}
	return d
}

// roiAPIBaseURL is where editor sessions reach the REST API. It defaults to
// this process over loopback.
func roiAPIBaseURL() string {
	if base := os.Getenv("ROI_API_BASE_URL"); base != "" {
		return base
	}
	return "http://127.0.0.1:" + appPort()
}
