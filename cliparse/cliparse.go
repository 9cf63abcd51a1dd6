package cliparse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// ErrHelp is returned when the arguments asked for usage instead of a run.
var ErrHelp = errors.New("help requested")

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	JWTSecret    string
	IPHashSalt   string
	RedisAddr    string
	RedisChannel string
	TraceStdout  bool
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	return parse(args, os.Stdout, os.Stderr)
}

func parse(args []string, stdout, stderr io.Writer) (Config, error) {
	var cfg Config
	ran := false

	cmd := &cli.Command{
		Name:            "quickpoll",
		Usage:           "Poll and vote API server",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			// Network config (can be CLI args or env)
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 3318, Usage: "Server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "database-url", Aliases: []string{"d"}, Usage: "Database URL or SQLite path", Sources: cli.EnvVars("DATABASE_URL")},
			&cli.StringFlag{Name: "database-type", Aliases: []string{"t"}, Value: "sqlite", Usage: "Database type (sqlite or postgres)", Sources: cli.EnvVars("DATABASE_TYPE")},

			// Secrets (prefer env variables, but allow CLI for dev)
			&cli.StringFlag{Name: "jwt-secret", Usage: "HS256 secret for bearer tokens (prefer env)", Sources: cli.EnvVars("JWT_SECRET")},
			&cli.StringFlag{Name: "ip-salt", Usage: "Salt for hashing anonymous voter IPs (prefer env)", Sources: cli.EnvVars("IP_HASH_SALT")},

			// Optional integrations
			&cli.StringFlag{Name: "redis-addr", Usage: "Redis address for change events (disabled when empty)", Sources: cli.EnvVars("REDIS_ADDR")},
			&cli.StringFlag{Name: "redis-channel", Value: "quickpoll.events", Usage: "Redis pub/sub channel", Sources: cli.EnvVars("REDIS_CHANNEL")},
			&cli.BoolFlag{Name: "trace-stdout", Usage: "Export trace spans to stdout", Sources: cli.EnvVars("TRACE_STDOUT")},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			ran = true
			cfg = Config{
				Port:         int(c.Int("port")),
				DatabaseURL:  c.String("database-url"),
				DatabaseType: c.String("database-type"),
				JWTSecret:    c.String("jwt-secret"),
				IPHashSalt:   c.String("ip-salt"),
				RedisAddr:    c.String("redis-addr"),
				RedisChannel: c.String("redis-channel"),
				TraceStdout:  c.Bool("trace-stdout"),
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), append([]string{"quickpoll"}, args...)); err != nil {
		return Config{}, err
	}
	if !ran {
		return Config{}, ErrHelp
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	if cfg.IPHashSalt == "" {
		return errors.New("IP_HASH_SALT required")
	}
	return nil
}
