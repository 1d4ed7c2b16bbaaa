package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/dstockton/ado-pr-mcp/pkg/adopr"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server exposing Azure DevOps pull-request resources.

By default the server communicates over stdin/stdout using the MCP
protocol; pass --listen to serve streamable HTTP instead.

Configuration comes from the environment: AZURE_DEVOPS_PAT (required
for live calls) and the optional ADO_ORGANIZATION, ADO_PROJECT and
ADO_REPOSITORY coordinate defaults.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "serve MCP over HTTP on this address instead of stdio")
}

// setupLogging configures logging to write to ~/.ado-pr-mcp/server.log.
// Stdout is never used: the stdio transport owns it.
func setupLogging() (*os.File, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(homeDir, ".ado-pr-mcp")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, "server.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	// Write to both stderr and log file
	multiWriter := io.MultiWriter(os.Stderr, logFile)
	log.SetOutput(multiWriter)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	return logFile, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Warning: failed to setup file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Printf("=== ado-pr-mcp serve starting ===")
	log.Printf("Version: %s", adopr.Version)
	log.Printf("OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Printf("PID: %d", os.Getpid())
	if cwd, err := os.Getwd(); err == nil {
		log.Printf("Working directory: %s", cwd)
	}

	cfg, err := adopr.LoadConfig()
	if err != nil {
		log.Printf("ERROR: failed to load configuration: %v", err)
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.PAT == "" {
		log.Printf("Warning: AZURE_DEVOPS_PAT is not set, live Azure DevOps calls will fail")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	server := adopr.NewServer(adopr.NewHandler(cfg, nil))

	if listenAddr != "" {
		log.Printf("Serving MCP over HTTP on %s", listenAddr)
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
		srv := &http.Server{Addr: listenAddr, Handler: handler}
		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			srv.Shutdown(shutdownCtx)
		}()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	log.Printf("Serving MCP on stdin/stdout")
	return server.Run(ctx, mcp.NewStdioTransport())
}
