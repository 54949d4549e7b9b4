// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package supervisor runs the tracker's long-lived services under suture v4.

# Tree

	RootSupervisor ("mcutracker")
	├── DataSupervisor ("data-layer")
	│   └── badger-gc (Badger backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── event-consumer
	│   ├── rate-limit-sweep
	│   └── login-guard-sweep
	└── APISupervisor ("api-layer")
	    └── http-server

Each layer restarts its own children with suture's backoff, so a consumer
that keeps failing does not restart the HTTP server. Supervisor events are
logged through sutureslog on the slog bridge from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	tree.AddMessagingService(services.NewRunnerService("event-consumer", consumer))
	return tree.Serve(ctx)

Serve returns when ctx is canceled and every service has stopped or the
shutdown timeout elapsed. UnstoppedServiceReport names the stragglers.
*/
package supervisor
