package app

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/reelflip/jeeprep-api/api"
	"github.com/reelflip/jeeprep-api/config"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/router"
	"github.com/reelflip/jeeprep-api/services/backup"
	"github.com/reelflip/jeeprep-api/services/cron"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Open the document store over the configured backend
	kv, err := openBackend(getEnv)
	if err != nil {
		return err
	}
	store := database.NewStore(kv)

	// Configure the snapshot uploader when a bucket is set
	var uploader *backup.Uploader
	if getEnv.SPACES_BUCKET != "" {
		uploader, err = backup.NewUploader(backup.Config{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: snapshot uploader disabled: %v", err)
			uploader = nil
		}
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.Manager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewManager(store, uploader)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
			// Don't fail the app, just log the warning
		}
	}

	// Defer stopping cron jobs and closing the store
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())

	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, getEnv)

	// Get the PORT & Start the Server
	return server.Run()

}

// openBackend selects the key-value backend named by STORE_BACKEND.
func openBackend(env *config.EnviornmentVariable) (database.KV, error) {
	switch env.STORE_BACKEND {
	case "memory":
		return database.NewMemoryKV(), nil
	case "redis":
		redisURL := env.REDIS_URL
		if redisURL == "" {
			redisURL = "redis://localhost:6379/0"
		}
		return database.NewRedisKV(redisURL)
	case "postgres":
		return database.NewPostgresKV(database.PostgresConfig{
			Host:     env.DB_HOST,
			Port:     env.DB_PORT,
			User:     env.DB_USER_NAME,
			Password: env.DB_PASSWORD,
			DBName:   env.DB_NAME,
			SSLMode:  env.DB_SSL_MODE,
		})
	case "file":
		return database.NewFileKV(env.DATA_DIR)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", env.STORE_BACKEND)
	}
}
