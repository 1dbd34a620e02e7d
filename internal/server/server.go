package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/handler"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
)

// shutdownTimeout bounds the graceful stop of every transport.
const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	httpAddress string
	grpcAddress string

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		httpAddress: cfg.HTTPAddress,
		grpcAddress: cfg.GRPCAddress,
		logger:      logger,
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer binds every configured transport, serves until ctx is done or
// one transport fails, and then shuts all of them down gracefully.
func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	httpListener, grpcListener, err := s.listen()
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	if httpListener != nil {
		g.Go(func() error { return s.httpServer.Serve(httpListener) })
	}
	if grpcListener != nil {
		g.Go(func() error { return s.gRPCServer.Serve(grpcListener) })
	}

	// stop everything on a signal or on the first transport failure
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	// finish HTTP server
	if s.httpServer != nil {
		errs = append(errs, s.httpServer.Shutdown(ctx))
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		errs = append(errs, s.gRPCServer.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

// listen binds both addresses up front so a taken port fails startup
// instead of surfacing later from a goroutine.
func (s *server) listen() (httpListener, grpcListener net.Listener, err error) {
	if s.httpServer != nil {
		httpListener, err = net.Listen("tcp", s.httpAddress)
		if err != nil {
			return nil, nil, fmt.Errorf("error listening on HTTP address %s: %w", s.httpAddress, err)
		}
	}

	if s.gRPCServer != nil {
		grpcListener, err = net.Listen("tcp", s.grpcAddress)
		if err != nil {
			if httpListener != nil {
				_ = httpListener.Close()
			}
			return nil, nil, fmt.Errorf("error listening on gRPC address %s: %w", s.grpcAddress, err)
		}
	}

	return httpListener, grpcListener, nil
}
