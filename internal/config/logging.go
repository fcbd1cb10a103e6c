package config

import (
    "os"
    "strings"

    log "github.com/sirupsen/logrus"
)

// SetupLogging configures the global logrus logger from LOG_LEVEL and
// LOG_FORMAT.  An unknown level falls back to info.
func SetupLogging(c Config) {
    log.SetOutput(os.Stdout)
    lvl, err := log.ParseLevel(c.LogLevel)
    if err != nil {
        lvl = log.InfoLevel
    }
    log.SetLevel(lvl)
    if strings.EqualFold(c.LogFormat, "json") {
        log.SetFormatter(&log.JSONFormatter{})
        return
    }
    log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
