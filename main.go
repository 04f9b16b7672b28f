package main

import (
	"fmt"
	"os"
	"strings"

	"gagyebu/ledger-csv/cmd/batch"
	"gagyebu/ledger-csv/cmd/categorize"
	"gagyebu/ledger-csv/cmd/edit"
	"gagyebu/ledger-csv/cmd/normalize"
	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/cmd/sheets"
	"gagyebu/ledger-csv/cmd/summary"
	"gagyebu/ledger-csv/cmd/taxonomy"

	"github.com/sirupsen/logrus"
)

func init() {
	// Set the global logrus level before any logger is built so that nothing
	// logged during startup escapes the configured level.
	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(normalize.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(edit.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(taxonomy.Cmd)
	root.Cmd.AddCommand(sheets.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from LEDGER_LOG_LEVEL.
func configureLogLevelDirectly() {
	logLevel, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LEDGER_LOG_LEVEL")))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
