package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudposse/depwhy/cmd"
	errUtils "github.com/cloudposse/depwhy/errors"
	log "github.com/cloudposse/depwhy/pkg/logger"
)

func main() {
	// Set up signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		cmd.Cleanup()
		// Exit with the POSIX code for the signal (128 + signal number).
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	errUtils.OsExit(run())
}

// run executes the application and returns an exit code.
// This separation allows cleanup via defer before os.Exit in main().
func run() int {
	defer cmd.Cleanup()

	if err := cmd.Execute(); err != nil {
		formatted := errUtils.Format(err, errUtils.DefaultFormatterConfig())
		os.Stderr.WriteString(formatted + "\n")

		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}

	return 0
}
