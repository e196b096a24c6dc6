package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/database"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/notify"
)

type notifier interface {
	Send(ctx context.Context, event domain.FlightStatusEvent) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("worker", pflag.ContinueOnError)
	cfgPath := flags.String("config", defaultConfigPath(), "path to the YAML config")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logr.Sync() }()

	if cfg.Migrations.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		_, err = database.Migrate(ctx, pool, logr)
		pool.Close()
		if err != nil {
			return err
		}
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightStatusTopic, logr)
	defer consumer.Close()

	sender := notify.NewSender(logr)
	logr.Info("worker started", zap.String("topic", cfg.Kafka.FlightStatusTopic), zap.String("group", cfg.Kafka.GroupID))

	if err := consumer.Consume(ctx, handleStatusEvent(sender, logr)); err != nil {
		return fmt.Errorf("consumer stopped: %w", err)
	}
	logr.Info("shutting down")
	return nil
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

// handleStatusEvent skips messages that cannot be decoded so one bad payload
// does not stall the partition. Notification failures stop the consumer.
func handleStatusEvent(n notifier, logr *zap.Logger) func(context.Context, kafkaGo.Message) error {
	return func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeFlightStatusEvent(msg)
		if err != nil {
			logr.Warn("skip undecodable event", zap.Int64("offset", msg.Offset), zap.Error(err))
			return nil
		}
		return n.Send(ctx, event)
	}
}
