// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

Flags are declared with urfave/cli; each one also reads an environment
variable, and an explicit flag always wins over the environment.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p, --port           Server port (default 3318)          PORT
	-d, --database-url   Database URL or SQLite path         DATABASE_URL
	-t, --database-type  sqlite or postgres (default sqlite) DATABASE_TYPE
	--jwt-secret         HS256 bearer token secret           JWT_SECRET
	--ip-salt            Salt for anonymous voter IPs        IP_HASH_SALT
	--redis-addr         Redis for change events (optional)  REDIS_ADDR
	--redis-channel      Pub/sub channel                     REDIS_CHANNEL
	--trace-stdout       Export spans to stdout              TRACE_STDOUT

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - IP_HASH_SALT must be provided

With -h or --help the usage text is printed and ErrHelp is returned.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if errors.Is(err, cliparse.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(store.New(conn), cfg)
*/
package cliparse
