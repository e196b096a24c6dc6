package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/database"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/airports"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
)

const usage = `usage: flightbooking [--config path] <command> [flags]

commands:
  migrate    apply pending schema migrations
  airports   list airports (--country, --city, --iata, --icao)
  flights    list flights (--from, --to, --date, --status)
  status     change a flight status (--id, --status) and publish the event
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := pflag.NewFlagSet("flightbooking", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	cfgPath := global.String("config", defaultConfigPath(), "path to the YAML config")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}
	command, rest := global.Arg(0), global.Args()[1:]

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if command == "migrate" || cfg.Migrations.Enabled {
		if _, err := database.Migrate(ctx, pool, log); err != nil {
			return err
		}
	}

	store := repository.NewStore(database.NewPoolProvider(pool, cfg.Database.Pool.AcquireTimeout))
	log = log.With(zap.String("command", command))

	switch command {
	case "migrate":
		return nil
	case "airports":
		return listAirports(ctx, airports.NewAirportService(store.Airports), rest, out)
	case "flights":
		return listFlights(ctx, flights.NewFlightService(store.Flights, nil, "", log), rest, out)
	case "status":
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		service := flights.NewFlightService(store.Flights, producer, cfg.Kafka.FlightStatusTopic, log,
			flights.WithPublishRetries(cfg.Kafka.PublishRetries))
		return changeStatus(ctx, service, rest, out)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
