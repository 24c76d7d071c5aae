// Command treebench drives the tree engines from the command line: single
// tree sessions, side by side comparisons and timed benchmark runs.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if err := newRootCmd(log).Execute(); err != nil {
		log.WithError(err).Error("treebench failed")
		os.Exit(1)
	}
}
