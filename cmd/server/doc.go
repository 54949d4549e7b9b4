// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Command server runs the MCU Tracker HTTP API.

# Process tree

	RootSupervisor ("mcutracker")
	├── DataSupervisor ("data-layer")
	│   └── badger-gc
	├── MessagingSupervisor ("messaging-layer")
	│   ├── event-consumer
	│   ├── rate-limit-sweep
	│   └── login-guard-sweep
	└── APISupervisor ("api-layer")
	    └── http-server

Start-up order:

 1. Configuration: koanf v2 (defaults, then config.yaml, then environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Store: Badger (embedded, default) or MongoDB
 4. Catalog and merge engine with the override circuit breaker
 5. Event bus and consumer (watermill gochannel)
 6. Account and admin services, JWT, Casbin enforcer, rate limiter
 7. Chi router, then the supervisor tree

# Configuration

Every key can be set from the environment. Common ones:

	JWT_SECRET           32+ character signing secret (required)
	HTTP_PORT            listen port (default 3000)
	STORE_DRIVER         badger | mongo
	BADGER_PATH          Badger directory (default /data/mcutracker)
	MONGO_URI            MongoDB connection string when STORE_DRIVER=mongo
	CORS_ORIGINS         comma-separated allowed origins
	TRUSTED_PROXIES      CIDRs whose X-Forwarded-For is honored
	DISABLE_RATE_LIMIT   turn the per-route limits off (tests only)

# Admin accounts

There is no route that grants the admin flag. Promote an existing account
from the command line. The change applies to the next request:

	server -promote-admin stark@avengers.com
	server -promote-admin stark@avengers.com -revoke

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up
to ten seconds, then the event bus and the store are closed.
*/
package main
