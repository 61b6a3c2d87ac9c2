package commands

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/csp/internal/logger"
	cspctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/examples"
	"github.com/marmos91/csp/pkg/registry"
	"github.com/marmos91/csp/pkg/server"
	"github.com/marmos91/csp/pkg/settings"
	"github.com/marmos91/csp/pkg/wire"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the CSP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart()
	},
}

func runStart() error {
	cfg, err := settings.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: "stdout"}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	reg := registry.New()
	if err := registerExampleHandlers(reg); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	srv := server.New(reg, cfg)

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}
	defer ln.Close()
	logger.Info("cspd listening", "addr", cfg.ListenAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				logger.Error("accept failed", "error", err)
				continue
			}
		}
		go serveConn(ctx, srv, conn)
	}
}

// serveConn reads length-prefixed CSP messages off conn and writes back
// the dispatcher's length-prefixed reply, one message per round trip.
// Framing here is cspd's own transport convention, not part of the CSP
// wire format itself (spec §1 scopes "the concrete CSP transport" out).
func serveConn(ctx context.Context, srv *server.Server, conn net.Conn) {
	defer conn.Close()
	clientAddr := conn.RemoteAddr().String()
	r := bufio.NewReader(conn)

	for {
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			if err != io.EOF {
				logger.Warn("read frame length failed", "client", clientAddr, "error", err)
			}
			return
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			logger.Warn("read frame body failed", "client", clientAddr, "error", err)
			return
		}

		reply, err := srv.HandleMessage(ctx, buf, clientAddr)
		if err != nil {
			logger.Warn("dispatch failed", "client", clientAddr, "error", err)
			return
		}

		if err := binary.Write(conn, binary.LittleEndian, uint32(len(reply))); err != nil {
			return
		}
		if _, err := conn.Write(reply); err != nil {
			return
		}
	}
}

func registerExampleHandlers(reg *registry.Registry) error {
	pingHandler := &server.Entry{
		MinimumVersion: 1,
		CurrentVersion: 1,
		ForTempUseHeap: true,
		Fn: func(ctx context.Context, d *cspctx.Data, src *wire.Source, clientAddr string) (wire.StructID, []byte, error) {
			raw, err := src.ReadN(2)
			if err != nil {
				return wire.StructID{}, nil, err
			}
			var ping examples.Ping
			if err := ping.SetRawBytes(raw); err != nil {
				return wire.StructID{}, nil, err
			}
			logger.Debug("ping received", "mx", ping.MX, "my", ping.MY, "client", clientAddr)

			pong := examples.Pong{Echoed: ping}
			return pong.StructID(), pong.RawBytes(), nil
		},
	}
	return reg.Register(examples.Ping{}.StructID(), false, pingHandler)
}
