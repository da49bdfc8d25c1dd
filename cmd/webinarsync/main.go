package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-webinar-sync/attendees"
	"github.com/jrsteele09/go-webinar-sync/credentials"
	"github.com/jrsteele09/go-webinar-sync/internal/config"
	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
	"github.com/jrsteele09/go-webinar-sync/internal/httpapi"
	"github.com/jrsteele09/go-webinar-sync/leads"
	"github.com/jrsteele09/go-webinar-sync/ledger"
	"github.com/jrsteele09/go-webinar-sync/pipeline"
	"github.com/jrsteele09/go-webinar-sync/registrants"
	"github.com/jrsteele09/go-webinar-sync/token"
	"github.com/jrsteele09/go-webinar-sync/webinars"
)

const appName = "webinarsync"

func main() {
	setupLogging()
	displayAppname(appName)

	// This is the single error boundary of the process: a failed run is
	// logged, never re-raised, and the exit code stays zero. Operators
	// watch the logs; ledger state already committed lets the next
	// scheduled run resume where this one stopped.
	if err := run(); err != nil {
		log.Error().Err(err).Msg("synchronization run failed")
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Info().Str("config", cfg.String()).Msg("configuration loaded")

	credentialStore := credentials.NewFileStore(filepath.Join(cfg.Files.OutputDir, cfg.Files.RefreshTokenFile))
	if err := bootstrapCredential(credentialStore, cfg.API.InitialRefreshToken); err != nil {
		return err
	}

	p, err := buildPipeline(cfg, credentialStore)
	if err != nil {
		return err
	}
	return p.Run(context.Background())
}

// bootstrapCredential seeds the credential store from configuration on the
// very first run. Once a token is stored, the configured bootstrap value is
// ignored; the store always holds the most recently rotated token.
func bootstrapCredential(store credentials.Store, initialToken string) error {
	_, err := store.Load()
	if err == nil {
		log.Info().Msg("persisted refresh token found")
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrNoRefreshToken) {
		return err
	}
	if initialToken == "" {
		log.Warn().Msg("no persisted refresh token and no initial refresh token configured")
		return nil
	}
	if err := store.Save(initialToken); err != nil {
		return err
	}
	log.Info().Msg("refresh token initialized from configuration")
	return nil
}

func buildPipeline(cfg *config.Config, credentialStore credentials.Store) (*pipeline.Pipeline, error) {
	client := httpapi.NewClient(cfg.API.Timeout())

	services := pipeline.Services{
		Tokens: token.NewManager(cfg.API.TokenEndpoint, cfg.API.RedirectURI,
			cfg.API.ClientID, cfg.API.ClientSecret, credentialStore, cfg.API.Timeout()),
		Webinars:    webinars.NewService(client, cfg.API.BaseURL, cfg.API.AccountKey),
		Registrants: registrants.NewService(client, cfg.API.BaseURL),
		Attendees:   attendees.NewService(client, cfg.API.BaseURL),
	}

	storage := pipeline.Storage{
		Snapshot:         webinars.NewSnapshotWriter(cfg.Files.OutputDir),
		RegistrantFiles:  registrants.NewFileWriter(cfg.Files.OutputDir, cfg.Files.DummyPhone),
		AttendeeFiles:    attendees.NewFileWriter(cfg.Files.OutputDir),
		Inbox:            leads.NewInbox(cfg.Files.InputDir),
		UploadLedger:     ledger.New(ledger.NewFileStore(filepath.Join(cfg.Files.OutputDir, cfg.Files.UploadedKeyFile))),
		RegistrantLedger: ledger.New(ledger.NewFileStore(filepath.Join(cfg.Files.OutputDir, cfg.Files.RegistrantKeyFile))),
		AttendeeLedger:   ledger.New(ledger.NewFileStore(filepath.Join(cfg.Files.OutputDir, cfg.Files.AttendeeKeyFile))),
	}

	return pipeline.New(services, storage, cfg.Files.DummyPhone, cfg.Sync)
}

func setupLogging() {
	level := zerolog.DebugLevel
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
