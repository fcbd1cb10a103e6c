package main // Entry point package

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("localrot exited")
		os.Exit(1)
	}
}
