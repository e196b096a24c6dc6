package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/airports"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
)

type airportQuery struct {
	country, city, iata, icao string
}

func parseAirportQuery(args []string) (airportQuery, error) {
	var q airportQuery
	fs := pflag.NewFlagSet("airports", pflag.ContinueOnError)
	fs.StringVar(&q.country, "country", "", "only airports in this country")
	fs.StringVar(&q.city, "city", "", "only airports in this city")
	fs.StringVar(&q.iata, "iata", "", "look up one airport by IATA code")
	fs.StringVar(&q.icao, "icao", "", "look up one airport by ICAO code")
	if err := fs.Parse(args); err != nil {
		return q, err
	}
	set := 0
	for _, v := range []string{q.country, q.city, q.iata, q.icao} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return q, errors.New("airports: use at most one of --country, --city, --iata, --icao")
	}
	return q, nil
}

func listAirports(ctx context.Context, svc airports.AirportUseCase, args []string, out io.Writer) error {
	q, err := parseAirportQuery(args)
	if err != nil {
		return err
	}

	var list []domain.Airport
	switch {
	case q.iata != "":
		var a domain.Airport
		a, err = svc.GetByIataCode(ctx, q.iata)
		list = []domain.Airport{a}
	case q.icao != "":
		var a domain.Airport
		a, err = svc.GetByIcaoCode(ctx, q.icao)
		list = []domain.Airport{a}
	case q.country != "":
		list, err = svc.ListByCountry(ctx, q.country)
	case q.city != "":
		list, err = svc.ListByCity(ctx, q.city)
	default:
		list, err = svc.List(ctx)
	}
	if err != nil {
		return err
	}
	return printAirports(out, list)
}

func printAirports(out io.Writer, list []domain.Airport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tIATA\tICAO\tNAME\tCITY\tCOUNTRY\tTZ")
	for _, a := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.IataCode, a.IcaoCode, a.Name, a.City, a.Country, a.Timezone)
	}
	return w.Flush()
}

func parseFlightCriteria(args []string) (repository.FlightCriteria, error) {
	var (
		c                repository.FlightCriteria
		from, to         int64
		date, statusCode string
	)
	fs := pflag.NewFlagSet("flights", pflag.ContinueOnError)
	fs.Int64Var(&from, "from", 0, "departure airport id")
	fs.Int64Var(&to, "to", 0, "arrival airport id")
	fs.StringVar(&date, "date", "", "departure date, YYYY-MM-DD")
	fs.StringVar(&statusCode, "status", "", "flight status code")
	if err := fs.Parse(args); err != nil {
		return c, err
	}

	if fs.Changed("from") {
		c.DepartureAirportID = &from
	}
	if fs.Changed("to") {
		c.ArrivalAirportID = &to
	}
	if date != "" {
		d, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return c, fmt.Errorf("flights: bad --date: %w", err)
		}
		c.Date = &d
	}
	if statusCode != "" {
		s, err := domain.ParseFlightStatus(statusCode)
		if err != nil {
			return c, fmt.Errorf("flights: %w", err)
		}
		c.Status = &s
	}
	return c, nil
}

func listFlights(ctx context.Context, svc flights.FlightUseCase, args []string, out io.Writer) error {
	criteria, err := parseFlightCriteria(args)
	if err != nil {
		return err
	}
	list, err := svc.Search(ctx, criteria)
	if err != nil {
		return err
	}
	return printFlights(out, list)
}

func printFlights(out io.Writer, list []domain.Flight) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tAIRLINE\tFROM\tTO\tDEPARTS\tDURATION\tPRICE\tSTATUS")
	for _, f := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, f.FlightNumber, f.Airline.IataCode,
			f.DepartureAirport.IataCode, f.ArrivalAirport.IataCode,
			f.DepartureTime.UTC().Format(time.RFC3339), f.Duration(),
			f.BasePrice.StringFixed(2), f.Status)
	}
	return w.Flush()
}

func changeStatus(ctx context.Context, svc flights.FlightUseCase, args []string, out io.Writer) error {
	var (
		id         int64
		statusCode string
	)
	fs := pflag.NewFlagSet("status", pflag.ContinueOnError)
	fs.Int64Var(&id, "id", 0, "flight id")
	fs.StringVar(&statusCode, "status", "", "new status code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	status, err := domain.ParseFlightStatus(statusCode)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	event, err := svc.ChangeStatus(ctx, id, status)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "flight %d (%s) is now %s, event %s\n", event.FlightID, event.FlightNumber, event.Status, event.EventID)
	return err
}
