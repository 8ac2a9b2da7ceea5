// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses configuration for the watcher and the simulator.

Precedence for the watcher (ParseFlags): CLI flags, then environment
variables, then an optional YAML config file (-config /
ORDER_WATCH_CONFIG), then defaults. A .env file in the working directory is
loaded first when present.

Watcher settings:

  - API_BASE_URL (-api): order API base URL (required)
  - TENANT_ID (-tenant): tenant id (required)
  - API_TOKEN (-token): bearer token
  - REMEMBER_TOKEN (-remember): persist the token across runs
  - POLL_INTERVAL (-interval): poll cadence (default: 4s)
  - DATABASE_URL (-d): state store path/URL (default: order-watch.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

Simulator settings (ParseSimFlags):

  - PORT (-p): server port (default: 3380)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): order database
  - TOKEN_SALT (-token-salt): integration token salt (required)
*/
package cliparse
