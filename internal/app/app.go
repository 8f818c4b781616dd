// Package app assembles the vault from its parts: configuration, logging,
// the session state machine, the file registry, sharing, notifications, and
// the optional blob transport.
package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/dkalachov/filevault/internal/blobstore"
	"github.com/dkalachov/filevault/internal/config"
	"github.com/dkalachov/filevault/internal/creds"
	"github.com/dkalachov/filevault/internal/logging"
	"github.com/dkalachov/filevault/internal/notify"
	"github.com/dkalachov/filevault/internal/registry"
	"github.com/dkalachov/filevault/internal/repositories/files"
	"github.com/dkalachov/filevault/internal/secondfactor"
	"github.com/dkalachov/filevault/internal/session"
	"github.com/dkalachov/filevault/internal/sharing"
	"github.com/dkalachov/filevault/internal/timex"
)

// App wires the services together. Everything shares one clock so the
// expiring pieces (failure signal, notifications, token validity, TOTP
// windows) stay mutually consistent.
type App struct {
	Config        *config.Config
	Logger        logging.Logger
	Clock         timex.Clock
	Session       *session.Service
	Registry      *registry.Service
	Sharing       *sharing.Service
	Notifications *notify.Channel
	Blobs         *blobstore.S3Presigner
}

// NewApp builds the application from configuration. The registry backend is
// chosen by DSN (empty keeps records in memory); the second factor is TOTP
// when a secret is configured and the static demo code otherwise; presigned
// blob transfers are enabled only when an S3 endpoint is configured.
func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	clock := timex.System{}

	var repo files.Repository
	if cfg.DatabaseDSN != "" {
		pg, err := files.NewPostgresRepository(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		repo = pg
	} else {
		repo = files.NewInMemoryRepository()
	}

	store := creds.NewStaticStore(cfg.DemoUsername, cfg.DemoPassword)

	var verifier secondfactor.Verifier
	if cfg.TOTPSecret != "" {
		verifier = secondfactor.NewTOTPVerifier(cfg.TOTPSecret, clock)
	} else {
		verifier = secondfactor.NewStaticVerifier(cfg.DemoSecondFactorCode)
	}

	sizer := blobstore.NewRandomSizeEstimator(clock.Now().UnixNano())

	var blobs *blobstore.S3Presigner
	if cfg.S3BaseEndpoint != "" {
		blobs = blobstore.NewS3Presigner(blobstore.Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	}

	return &App{
		Config: cfg,
		Logger: logger,
		Clock:  clock,
		Session: session.NewService(store, verifier, clock, logger,
			[]byte(cfg.SecretKey), cfg.SessionTokenValidity),
		Registry:      registry.NewService(repo, clock, sizer, logger),
		Sharing:       sharing.NewService(repo, clock, logger),
		Notifications: notify.NewChannel(clock),
		Blobs:         blobs,
	}, nil
}

// Reset tears the session down: the user is logged out, any notification is
// dismissed, and the registry is cleared so the next login reseeds it.
func (a *App) Reset(ctx context.Context) error {
	a.Session.Logout()
	a.Notifications.Dismiss()
	return a.Registry.Reset(ctx)
}
