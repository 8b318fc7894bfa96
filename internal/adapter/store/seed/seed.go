// Package seed loads ride and ride request fixtures from YAML files.
// Seeds back the memory store and bootstrap SQL stores in development.
package seed

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
)

// File is the top-level layout of a seed file.
type File struct {
	Rides        []Record        `yaml:"rides"`
	RideRequests []RequestRecord `yaml:"ride_requests"`
}

// Record is one ride as written in a seed file.
// Times without an offset are read in the loader's reference zone.
type Record struct {
	ID              string `yaml:"id"`
	DepartureCity   string `yaml:"departure_city"`
	DestinationCity string `yaml:"destination_city"`
	DepartureTime   string `yaml:"departure_time"`
	PricePerSeat    int    `yaml:"price_per_seat"`
	AvailableSeats  int    `yaml:"available_seats"`
	TotalSeats      int    `yaml:"total_seats"`
	Status          string `yaml:"status"`
	UserID          string `yaml:"user_id"`
	WhatsAppNumber  string `yaml:"whatsapp_number"`
	CreatedAt       string `yaml:"created_at"`
}

// RequestRecord is one ride request as written in a seed file.
type RequestRecord struct {
	ID             string `yaml:"id"`
	FromLocation   string `yaml:"from_location"`
	ToLocation     string `yaml:"to_location"`
	PreferredDate  string `yaml:"preferred_date"`
	SeatsNeeded    int    `yaml:"seats_needed"`
	Status         string `yaml:"status"`
	UserID         string `yaml:"user_id"`
	WhatsAppNumber string `yaml:"whatsapp_number"`
	CreatedAt      string `yaml:"created_at"`
}

// Data is the normalized content of a seed document.
type Data struct {
	Rides    []domain.Ride
	Requests []domain.RideRequest
}

// Options configures a Loader.
type Options struct {
	// Location is the zone for times written without an offset (default UTC)
	Location *time.Location

	// Clock stamps CreatedAt when a record omits it
	Clock timeutil.Clock

	// Logger receives a warning for every skipped record
	Logger *logger.Logger
}

// Loader reads and normalizes seed files.
type Loader struct {
	loc   *time.Location
	clock timeutil.Clock
	log   *logger.Logger
}

// NewLoader creates a Loader, filling unset options with defaults.
func NewLoader(opts Options) *Loader {
	l := &Loader{loc: opts.Location, clock: opts.Clock, log: opts.Logger}
	if l.loc == nil {
		l.loc = time.UTC
	}
	if l.clock == nil {
		l.clock = timeutil.NewRealClock()
	}
	if l.log == nil {
		l.log = logger.Nop()
	}
	return l
}

// LoadFile reads rides and ride requests from the YAML file at path.
func (l *Loader) LoadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	data, err := l.Load(f)
	if err != nil {
		return Data{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return data, nil
}

// Load decodes a seed document and normalizes its records.
// Records that cannot be normalized are skipped and logged; a malformed
// document is an error.
func (l *Loader) Load(r io.Reader) (Data, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return Data{}, fmt.Errorf("decode seed: %w", err)
	}

	return Data{
		Rides:    l.normalize(file.Rides),
		Requests: l.normalizeRequests(file.RideRequests),
	}, nil
}
