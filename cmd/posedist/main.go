// Package main is the posedist command itself.
package main

import (
	"os"

	"go.viam.com/manifold/cli"
	"go.viam.com/manifold/logging"
)

func main() {
	logging.ReplaceGlobal(logging.NewLogger("posedist"))
	if err := cli.NewApp(os.Stdout).Run(os.Args); err != nil {
		logger := logging.Global()
		logger.Error(err)
		//nolint:errcheck
		logger.Sync()
		os.Exit(1)
	}
}
