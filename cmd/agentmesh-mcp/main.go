// Command agentmesh-mcp runs the AgentMesh registry bridge as an MCP
// server over stdio.
//
// Logs go to stderr; stdout carries the MCP framing. The process runs
// until the host closes the transport.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	agentmesh "github.com/agentmesh/agentmesh-mcp"
	"github.com/agentmesh/agentmesh-mcp/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:     "agentmesh-mcp",
		Short:   "MCP bridge to the AgentMesh agent registry",
		Long:    "agentmesh-mcp exposes the AgentMesh registry (presence, messaging, consent, and agent discovery) as tools over the Model Context Protocol on stdio.",
		Version: agentmesh.Version,

		SilenceUsage:  true,
		SilenceErrors: false,

		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(v)

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			srv := agentmesh.New(
				agentmesh.WithLogger(logger),
				agentmesh.WithRegistryURL(cfg.RegistryURL),
				agentmesh.WithHeartbeat(cfg.HeartbeatInterval),
			)

			logger.Info("starting bridge",
				"registry_url", cfg.RegistryURL,
				"version", agentmesh.Version,
			)

			return srv.Run(cmd.Context())
		},
	}

	flags := rootCmd.Flags()
	flags.String("registry-url", config.DefaultRegistryURL, "registry base URL (env: AGENTMESH_REGISTRY_URL)")
	flags.Duration("heartbeat-interval", 0, "background presence keepalive cadence; 0 disables the loop")
	flags.String("log-level", "info", "stderr log level: debug, info, warn, or error")

	cobra.CheckErr(v.BindPFlag("registry_url", flags.Lookup("registry-url")))
	cobra.CheckErr(v.BindPFlag("heartbeat_interval", flags.Lookup("heartbeat-interval")))
	cobra.CheckErr(v.BindPFlag("log_level", flags.Lookup("log-level")))

	return rootCmd
}

// newLogger builds the stderr logger. Stdout is reserved for the MCP
// transport.
func newLogger(levelName string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
