package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/idea-validator/validator-api/config"
	"github.com/idea-validator/validator-api/internal/bootstrap"
	"github.com/idea-validator/validator-api/internal/validator/domain"
	"github.com/idea-validator/validator-api/internal/validator/service"
)

const serviceName = "validator-api"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Validates product ideas against a hosted language model",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newCheckCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	service.ConfigureLogging(os.Stderr, cfg.App.LogLevel, cfg.App.IsProduction())
	return cfg, nil
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	bootstrap.SetGinMode(cfg.App.Environment)

	if cfg.Upstream.APIKey == "" {
		slog.Warn("ANTHROPIC_API_KEY is not set; validate requests will fail with 500")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:      serviceName,
		Version:          cfg.App.Version,
		APIKeyConfigured: cfg.Upstream.APIKey != "",
		Validator:        bootstrap.NewValidationService(cfg),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server running", "addr", "http://localhost:"+cfg.Server.Port, "env", cfg.App.Environment)
		slog.Info("Health check", "url", "http://localhost:"+cfg.Server.Port+"/api/health")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "check [prompt]",
		Short: "Run one prompt through the validator and print the response",
		Long:  "Runs the same validation and upstream call as the HTTP endpoint. The prompt is taken from --prompt, the arguments, or stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if prompt == "" && len(args) > 0 {
				prompt = strings.Join(args, " ")
			}
			if prompt == "" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				prompt = string(b)
			}

			return check(cmd.Context(), bootstrap.NewValidationService(cfg), prompt, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "product description to validate")
	return cmd
}

func check(ctx context.Context, svc *service.Service, prompt string, out io.Writer) error {
	body, err := json.Marshal(domain.ValidationRequest{Prompt: prompt})
	if err != nil {
		return err
	}

	resp := svc.Handle(ctx, service.Request{Method: http.MethodPost, Body: bytes.NewReader(body)})

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, resp.Body, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(resp.Body)
	}
	fmt.Fprintln(out, pretty.String())

	if resp.Status != http.StatusOK {
		return fmt.Errorf("validator returned status %d", resp.Status)
	}
	return nil
}
