package config

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port                string
	StorageBucket       string
	CredentialsFile     string
	CredentialsJSON     string
	BackupSpreadsheetID string
}

// Load reads the optional .env file and the environment. It does not
// validate credentials; InitClients fails on bad ones.
func Load() *Config {
	// A missing .env is fine; real deployments use plain env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                os.Getenv("PORT"),
		StorageBucket:       os.Getenv("FIREBASE_STORAGE_BUCKET"),
		CredentialsFile:     os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		CredentialsJSON:     os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		BackupSpreadsheetID: os.Getenv("BACKUP_SPREADSHEET_ID"),
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	return cfg
}

func (cfg *Config) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	return opts
}

// Clients bundles the external service handles the routes depend on.
type Clients struct {
	Firestore *firestore.Client
	Bucket    *gcs.BucketHandle
	Sheets    *sheets.Service
}

// InitClients builds the Firebase app and the Firestore, Storage and
// Sheets clients from the loaded configuration. Any failure here is
// fatal to the caller: nothing works without credentials.
func InitClients(ctx context.Context, cfg *Config) (*Clients, error) {
	opts := cfg.clientOptions()

	var fbCfg *firebase.Config
	if cfg.StorageBucket != "" {
		fbCfg = &firebase.Config{StorageBucket: cfg.StorageBucket}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}

	var bucket *gcs.BucketHandle
	if cfg.StorageBucket != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("init storage client: %w", err)
		}
		bucket, err = storageClient.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("open storage bucket: %w", err)
		}
	}

	sheetsOpts := append(opts, option.WithScopes(sheets.SpreadsheetsScope))
	sheetsService, err := sheets.NewService(ctx, sheetsOpts...)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}

	return &Clients{
		Firestore: fsClient,
		Bucket:    bucket,
		Sheets:    sheetsService,
	}, nil
}
