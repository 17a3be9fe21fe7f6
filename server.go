package agentmesh

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/agentmesh/agentmesh-mcp/internal/registry"
	"github.com/agentmesh/agentmesh-mcp/internal/tools"
)

// ServerName is the implementation name reported during MCP initialize.
const ServerName = "agentmesh"

// Version is the bridge version reported during MCP initialize.
const Version = "1.0.0"

// Server ties the tool catalog, registry client, and session together
// behind one MCP server.
type Server struct {
	log        *slog.Logger
	session    *registry.Session
	service    *tools.Service
	dispatcher *tools.Dispatcher
	mcpServer  *mcp.Server
	heartbeat  time.Duration
}

// New constructs a Server with a fresh, unregistered session.
func New(opts ...Option) *Server {
	o := applyOptions(opts)

	session := registry.NewSession()
	client := registry.NewClient(o.registryURL, session, o.httpClient, o.logger)
	service := tools.NewService(client, session, o.logger)

	dispatcher := tools.NewDispatcher(o.logger)
	dispatcher.Add(tools.Catalog(service)...)

	mcpServer := mcp.NewServer(
		&mcp.Implementation{Name: ServerName, Version: o.version},
		&mcp.ServerOptions{HasTools: true},
	)
	dispatcher.Bind(mcpServer)

	return &Server{
		log:        o.logger,
		session:    session,
		service:    service,
		dispatcher: dispatcher,
		mcpServer:  mcpServer,
		heartbeat:  o.heartbeat,
	}
}

// Dispatcher exposes the tool catalog and invoke boundary, primarily for
// hosts that route calls themselves instead of using an MCP transport.
func (s *Server) Dispatcher() *tools.Dispatcher {
	return s.dispatcher
}

// Session returns the bridge's session state.
func (s *Server) Session() *registry.Session {
	return s.session
}

// Run serves MCP over stdio until the host closes the transport or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve runs the MCP server over the given transport, plus the background
// heartbeat loop when one is configured. It returns when the transport
// closes, ctx is cancelled, or either task fails.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		// Stop the heartbeat loop once the transport is gone, whether or
		// not the server exited cleanly.
		defer cancel()

		return s.mcpServer.Run(ctx, transport)
	})

	if s.heartbeat > 0 {
		eg.Go(func() error {
			s.heartbeatLoop(ctx)

			return nil
		})
	}

	return eg.Wait()
}

// heartbeatLoop refreshes the presence record on a fixed cadence while the
// session is registered. Failures are logged and retried on the next tick;
// a single missed heartbeat only shortens the presence window.
func (s *Server) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	s.log.Debug("heartbeat loop started", "interval", s.heartbeat)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.session.Registered() {
				continue
			}

			if _, err := s.service.Heartbeat(ctx); err != nil {
				s.log.Warn("background heartbeat failed", "error", err)
			}
		}
	}
}
