package app

import (
	"context"
	"database/sql"
	"net/http"

	"google.golang.org/api/option"

	"voice-shopping-assistant/app/controller"
	"voice-shopping-assistant/app/router"
	"voice-shopping-assistant/config"
	"voice-shopping-assistant/db"
	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
	"voice-shopping-assistant/repository"
	"voice-shopping-assistant/service"
)

// App holds the wired HTTP handler and the resources it owns
type App struct {
	Handler http.Handler
	conn    *sql.DB
}

// Initialize initializes the application. Unreachable optional backends
// (Postgres, Dialogflow) are logged and replaced by their in-process
// fallbacks, so only invalid wiring returns an error.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	// Initialize list store
	var durable repository.ListRepositoryInterface
	if cfg.ListStore == config.StorePostgres {
		conn, err := openDatabase(ctx, cfg)
		if err != nil {
			logger.S().Warnf("⚠️  Postgres unavailable, serving the shopping list from memory: %v", err)
		} else {
			a.conn = conn
			durable = repository.NewPostgresListRepository(conn)
		}
	}
	listRepo := repository.NewFallbackListRepository(durable, cfg.StoreTimeout)

	// Initialize classifiers
	var primary service.ClassifierInterface
	classifierName := models.SourceFallback
	if cfg.HasClassifierCredentials() {
		dialogflow, err := service.NewDialogflowClassifier(ctx, cfg.DialogflowProjectID, cfg.LanguageCode, credentialsOption(cfg))
		if err != nil {
			logger.S().Warnf("⚠️  Dialogflow unavailable, using fallback rules: %v", err)
		} else {
			primary = dialogflow
			classifierName = models.SourceDialogflow
		}
	} else {
		logger.S().Info("ℹ️  Dialogflow credentials not set, using fallback rules")
	}
	pipeline := service.NewClassifierPipeline(primary, service.NewFallbackClassifier(), cfg.ClassifierTimeout)

	// Initialize services
	catalog := service.NewCatalogService()
	assistant := service.NewAssistantService(pipeline, catalog, listRepo)

	// Create controllers
	exposeErrors := cfg.IsDevelopment()
	controllers := &router.Controllers{
		Health:    controller.NewHealthController(cfg.Env, listRepo, classifierName),
		List:      controller.NewListController(assistant, exposeErrors),
		Assistant: controller.NewAssistantController(assistant, exposeErrors),
		Catalog:   controller.NewCatalogController(catalog),
	}

	a.Handler = router.SetupRoutes(controllers, router.Options{
		ClientOrigin: cfg.ClientOrigin,
		ExposeErrors: exposeErrors,
	})

	logger.S().Infof("✓ Application initialized (store=%s, classifier=%s)", listRepo.Backend(), classifierName)
	return a, nil
}

// Close releases the database connection, if any
func (a *App) Close() error {
	return db.CloseDB(a.conn)
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	conn, err := db.InitDB(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		return nil, err
	}

	schemaCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := db.EnsureSchema(schemaCtx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// credentialsOption prefers inline service account JSON over a key file
func credentialsOption(cfg *config.Config) option.ClientOption {
	if cfg.CredentialsJSON != "" {
		return option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	}
	return option.WithCredentialsFile(cfg.CredentialsFile)
}
