package bootstrap

import (
	"log"

	"github.com/joho/godotenv"

	"quipvid/config"
	"quipvid/database"
	"quipvid/database/repository"
	"quipvid/logger"
	"quipvid/web/service"
)

// App bundles the wired service and repository instances.
type App struct {
	SettingService *service.SettingService
	UserService    *service.UserService
	VideoService   *service.VideoService
	IngestService  *service.IngestService
	ServerService  *service.ServerService

	VideoRepo   repository.VideoRepository
	UserRepo    repository.UserRepository
	SettingRepo repository.SettingRepository
}

func NewApp(
	settingService *service.SettingService,
	userService *service.UserService,
	videoService *service.VideoService,
	ingestService *service.IngestService,
	serverService *service.ServerService,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	settingRepo repository.SettingRepository,
) *App {
	return &App{
		SettingService: settingService,
		UserService:    userService,
		VideoService:   videoService,
		IngestService:  ingestService,
		ServerService:  serverService,

		VideoRepo:   videoRepo,
		UserRepo:    userRepo,
		SettingRepo: settingRepo,
	}
}

// InitDatabase opens the configured database: a MySQL URL/DSN when one is
// configured, the local SQLite file otherwise.
func InitDatabase() error {
	target := config.GetDatabaseURL()
	if target == "" {
		target = config.GetDBPath()
	}
	return database.InitDB(target)
}

func InitLogger() {
	var level logger.Level
	switch config.GetLogLevel() {
	case config.Debug:
		level = logger.DEBUG
	case config.Info:
		level = logger.INFO
	case config.Notice:
		level = logger.NOTICE
	case config.Warning:
		level = logger.WARNING
	case config.Error:
		level = logger.ERROR
	default:
		log.Fatalf("unknown log level: %v", config.GetLogLevel())
	}
	logger.InitLogger(level, config.IsDebug())
}

func LoadEnv() {
	_ = godotenv.Load()
}

// Initialize runs the full startup sequence and returns the wired app.
func Initialize() (*App, error) {
	log.Printf("Starting %v %v", config.GetName(), config.GetVersion())

	LoadEnv()
	InitLogger()

	if err := InitDatabase(); err != nil {
		return nil, err
	}

	return InitializeApp()
}
