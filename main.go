package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"pdf_pages/api"
	"pdf_pages/logger"
	"pdf_pages/pdf"
	"pdf_pages/session"
	"pdf_pages/tools"
)

const (
	// Version is reported by the MCP server
	Version = "v0.1.0"

	// DefaultMaxFileSize is the default maximum upload size (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 15 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 15 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

const usage = `Usage:
  pdf_pages [file.pdf]   interactive page editor
  pdf_pages serve        HTTP API
  pdf_pages mcp          MCP tool server on stdio`

func main() {
	mode := ""
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	var err error
	switch mode {
	case "serve":
		err = serve()
	case "mcp":
		err = serveMCP()
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		err = interactive(mode)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func interactive(path string) error {
	log, err := logger.NewLogger(logger.LogConfig{DefaultLevel: "warn"})
	if err != nil {
		return err
	}

	s := session.New(session.Config{
		In:     os.Stdin,
		Out:    os.Stdout,
		Codec:  pdf.NewPdfCodec(log),
		Viewer: pdf.OpenInViewer,
		Log:    log,
	})
	return s.Run(path)
}

func serveMCP() error {
	// stdout carries the protocol
	log, err := logger.NewLogger(logger.LogConfig{})
	if err != nil {
		return err
	}

	log.Info("Starting pdf_pages MCP server")
	srv := tools.CreateServer(pdf.NewPdfCodec(log), log, Version)
	return srv.Run(context.Background(), &mcp.StdioTransport{})
}

func serve() error {
	log, err := logger.NewLogger(logger.LogConfig{})
	if err != nil {
		return err
	}

	// Load configuration
	config := &api.Config{
		Port:        getEnv("PORT", DefaultPort),
		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		Codec:       pdf.NewPdfCodec(log),
		Log:         log,
	}

	r := gin.Default()
	r.MaxMultipartMemory = config.MaxFileSize
	api.SetupRoutes(r, config)

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"addr":          srv.Addr,
			"max_file_size": config.MaxFileSize,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
