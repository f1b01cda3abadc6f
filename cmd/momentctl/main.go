// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

// Package main is the momentctl operator CLI.
//
// momentctl shares the server's configuration (defaults, config.yaml and
// environment) and talks to Notion directly, bypassing the cache:
//
//	momentctl check               # verify credentials and database discovery
//	momentctl events              # fetch and print all events as JSON
//	momentctl events --summary    # print bucket counts instead
package main

import (
	"os"

	"github.com/tomtom215/momentmillionaer/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		logging.Fatal().Err(err).Msg("momentctl failed")
	}
}
