package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/campusgate/campusgate/internal/config"
	"github.com/campusgate/campusgate/internal/server"
	"github.com/campusgate/campusgate/internal/service"
	"github.com/campusgate/campusgate/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the campusgate API server",
		Long:  "Start the HTTP server that exposes the signup, login, Google sign-in, admin login, and enquiry endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP listen port (overrides config)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP listen host (overrides config)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")

	return cmd
}

func runServe(host string, port int, dev bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger := newLogger(cfg.Logging, dev)

	dsn, err := cfg.Database.ResolveDSN()
	if err != nil {
		return err
	}
	st, err := store.New(cfg.Database.Driver, dsn)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "driver", cfg.Database.Driver)

	studentSecret := cfg.Auth.StudentSecret
	if studentSecret == "" {
		studentSecret = "campusgate-dev-student-secret-change-me"
		logger.Warn("auth.student_secret not set, using insecure development default")
	}
	adminSecret := cfg.Auth.AdminSecret
	if adminSecret == "" {
		adminSecret = "campusgate-dev-admin-secret-change-me"
		logger.Warn("auth.admin_secret not set, using insecure development default")
	}

	if cfg.Google.ClientID == "" {
		logger.Warn("google.client_id not set, Google sign-in will reject all tokens")
	}

	ttl := cfg.Auth.TTL()
	accounts := service.NewAccountService(
		st,
		service.NewGoogleVerifier(cfg.Google.ClientID),
		service.NewTokenIssuer(studentSecret, ttl),
		service.NewTokenIssuer(adminSecret, ttl),
		logger,
	)

	admins, err := st.ListAdmins(context.Background())
	if err != nil {
		logger.Warn("failed to check for admin accounts", "error", err)
	} else if len(admins) == 0 {
		logger.Warn("no admin account found - run: campusgate admin create")
	}

	srvCfg := server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.Server.ShutdownTimeoutDuration(),
		FrontendOrigin:  cfg.Server.FrontendOrigin,
	}
	srv := server.New(srvCfg, st, accounts, logger)

	fmt.Printf("→ Listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health:  http://%s:%d/healthz\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Allowed origin: %s\n", cfg.Server.FrontendOrigin)
	fmt.Println()

	return srv.ListenAndServe()
}

// loadConfig reads the YAML config file and applies viper environment
// overrides (CAMPUSGATE_* variables) for the sensitive fields.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = "campusgate.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v := viper.GetString("auth.student_secret"); v != "" {
		cfg.Auth.StudentSecret = v
	}
	if v := viper.GetString("auth.admin_secret"); v != "" {
		cfg.Auth.AdminSecret = v
	}
	if v := viper.GetString("google.client_id"); v != "" {
		cfg.Google.ClientID = v
	}
	if v := viper.GetString("database.dsn"); v != "" {
		cfg.Database.DSN = v
	}
	return cfg, nil
}

func newLogger(cfg config.LoggingConfig, dev bool) *slog.Logger {
	level := slog.LevelInfo
	if dev || cfg.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
