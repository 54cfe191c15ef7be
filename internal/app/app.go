package app

import (
	"context"
	"fmt"
	"syscall"

	"github.com/andy/lumina/internal/assist"
	"github.com/andy/lumina/internal/config"
	"github.com/andy/lumina/internal/crypto"
	"github.com/andy/lumina/internal/db"
	"github.com/andy/lumina/internal/export"
	"github.com/andy/lumina/internal/logging"
	"github.com/andy/lumina/internal/repository"
	"github.com/andy/lumina/internal/service"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB

	// Storage
	KV *repository.KVRepo

	// Repositories
	DraftRepo      repository.DraftRepository
	ProfileRepo    repository.ProfileRepository
	ClientRepo     repository.ClientRepository
	SequenceRepo   repository.SequenceRepository
	PreferenceRepo repository.PreferenceRepository

	// Services
	InvoiceService service.InvoiceService
	AccountService service.AccountService

	// Export
	PDF *export.PDFRenderer

	apiKeyring  crypto.Keyring
	closeLogger func()
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Installing the file logger
// 3. Getting encryption key from keyring
// 4. Opening database
// 5. Running migrations
// 6. Creating repositories
// 7. Creating services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	closeLogger, err := logging.Install(logging.Config{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	keyring := crypto.NewKeyring(crypto.DatabaseKey)

	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			closeLogger()
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			closeLogger()
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		closeLogger()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		closeLogger()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	kv := repository.NewKVRepo(database)

	draftRepo := repository.NewDraftRepo(kv)
	profileRepo := repository.NewProfileRepo(kv)
	clientRepo := repository.NewClientRepo(kv)
	sequenceRepo := repository.NewSequenceRepo(kv)
	preferenceRepo := repository.NewPreferenceRepo(kv)

	invoiceService := service.NewInvoiceService(draftRepo, profileRepo, clientRepo, sequenceRepo, invoiceServiceConfig(cfg))
	accountService := service.NewAccountService(preferenceRepo)

	zap.L().Info("application started", zap.String("database", database.Path()))

	return &App{
		Config:         cfg,
		DB:             database,
		KV:             kv,
		DraftRepo:      draftRepo,
		ProfileRepo:    profileRepo,
		ClientRepo:     clientRepo,
		SequenceRepo:   sequenceRepo,
		PreferenceRepo: preferenceRepo,
		InvoiceService: invoiceService,
		AccountService: accountService,
		PDF:            export.NewPDFRenderer(),
		apiKeyring:     crypto.NewKeyring(crypto.APIKey),
		closeLogger:    closeLogger,
	}, nil
}

// Assist returns the text-generation service. It fails with
// assist.ErrNotConfigured when no API key is available.
func (a *App) Assist() (*assist.Service, error) {
	key, err := a.apiKeyring.GetKey()
	if err != nil {
		zap.L().Debug("no api key available", zap.Error(err))
		return nil, assist.ErrNotConfigured
	}

	client, err := assist.NewClient(assist.ClientConfig{
		Endpoint: a.Config.Assist.Endpoint,
		Model:    a.Config.Assist.Model,
		APIKey:   key,
		Timeout:  a.Config.Assist.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return assist.NewService(client), nil
}

// SetAPIKey stores the text-generation API key in the keyring
func (a *App) SetAPIKey(key string) error {
	return a.apiKeyring.SetKey(key)
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.closeLogger != nil {
		a.closeLogger()
	}
	return err
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your invoices and business profile will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// ReadSecret reads a line from the terminal without echo
func ReadSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(secret), nil
}

// SaveConfig saves the current configuration to disk and rebuilds the
// invoice service so new numbering and mail settings take effect
func (a *App) SaveConfig() error {
	if err := a.Config.Save(config.DefaultConfigPath()); err != nil {
		return err
	}
	a.InvoiceService = service.NewInvoiceService(a.DraftRepo, a.ProfileRepo, a.ClientRepo, a.SequenceRepo, invoiceServiceConfig(a.Config))
	return nil
}

func invoiceServiceConfig(cfg *config.Config) service.InvoiceServiceConfig {
	return service.InvoiceServiceConfig{
		NumberPrefix:   cfg.Invoice.NumberPrefix,
		DueDays:        cfg.Invoice.DefaultDueDays,
		MaxMailtoChars: cfg.Mail.MaxLinkLength,
	}
}
