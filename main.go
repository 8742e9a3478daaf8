package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
	"github.com/pdfdesk/pdfdesk/internal/bot"
	"github.com/pdfdesk/pdfdesk/internal/config"
	"github.com/pdfdesk/pdfdesk/internal/convert"
	"github.com/pdfdesk/pdfdesk/internal/ocr"
	"github.com/pdfdesk/pdfdesk/internal/pdfops"
	"github.com/pdfdesk/pdfdesk/internal/session"
	"github.com/pdfdesk/pdfdesk/internal/subscription"
	"github.com/pdfdesk/pdfdesk/internal/telegram"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable. Defaults to
// InfoLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	app := &cli.Command{
		Name:    "pdfdesk",
		Usage:   "Telegram bot for PDF transformation workflows",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "messages",
				Usage:   "Path to a YAML file overriding reply texts",
				Sources: cli.EnvVars("MESSAGES_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("pdfdesk version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
		},
		Action: func(cliCtx context.Context, cmd *cli.Command) error {
			return run(cliCtx, cmd, logger)
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command, logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	msgs, err := bot.LoadMessages(cmd.String("messages"))
	if err != nil {
		return err
	}

	files, err := artifact.NewDir(cfg.FilesDir)
	if err != nil {
		return err
	}

	engine := pdfops.NewEngine(logger)

	tess := ocr.NewTesseract(cfg.OCRLanguages...)
	tess.Binary = cfg.TesseractBinary
	recognizer := ocr.NewProcessor(tess, engine, logger)

	office := convert.NewOffice(logger)
	office.Binary = cfg.SofficeBinary

	tier, promos, err := buildTierGate(cfg, logger)
	if err != nil {
		return err
	}

	tg, err := telegram.New(cfg.BotToken, files, logger)
	if err != nil {
		return err
	}

	controller := bot.NewController(
		session.NewStore(), engine, recognizer, office, tier, promos, tg, tg, msgs, logger)

	sweeper := &artifact.Sweeper{
		Dir:       files.Root,
		Retention: cfg.Retention,
		Interval:  cfg.SweepInterval,
		Logger:    logger,
	}
	go sweeper.Run(ctx)

	logger.WithFields(logrus.Fields{
		"files_dir": cfg.FilesDir,
		"retention": cfg.Retention.String(),
	}).Info("Starting bot")

	if err := tg.Run(ctx, controller); err != nil && ctx.Err() == nil {
		return fmt.Errorf("bot stopped: %w", err)
	}
	logger.Info("Shutdown complete")
	return nil
}

// buildTierGate picks the subscription backend: PostgreSQL when a database is
// configured, otherwise the static allowlist. Database lookups sit behind a
// short TTL cache.
func buildTierGate(cfg *config.Config, logger *logrus.Logger) (subscription.Service, bot.Redeemer, error) {
	if cfg.DatabaseURL == "" {
		logger.WithField("pro_users", len(cfg.ProUsers)).Info("Using static subscription allowlist")
		return subscription.NewStatic(cfg.ProUsers), nil, nil
	}

	pg, err := subscription.NewPostgres(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("cache_ttl", cfg.PremiumTTL.String()).Info("Using database subscriptions")
	return subscription.NewCached(pg, cfg.PremiumTTL), pg, nil
}
