package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Telegram  TelegramConfig
	Providers ProviderConfig
	Midtrans  MidtransConfig
	Bonus     BonusConfig
	Worker    WorkerConfig
	Upload    UploadConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type TelegramConfig struct {
	BotToken         string
	BotUsername      string
	AdminTelegramIDs []int64
	InitDataMaxAge   time.Duration
}

type ProviderConfig struct {
	KieAPIKey   string
	KieBaseURL  string
	PoyoAPIKey  string
	PoyoBaseURL string
}

type MidtransConfig struct {
	ServerKey    string
	IsProduction bool
}

type BonusConfig struct {
	WelcomeTokens  int
	ReferralTokens int
}

type WorkerConfig struct {
	PollInterval    time.Duration
	ImageTimeout    time.Duration
	VideoTimeout    time.Duration
	DownloadTimeout time.Duration
}

type UploadConfig struct {
	Dir          string
	MaxImageSize int64
	MaxVideoSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Telegram: TelegramConfig{
			BotToken:         getEnv("BOT_TOKEN", ""),
			BotUsername:      getEnv("BOT_USERNAME", ""),
			AdminTelegramIDs: getEnvAsInt64Slice("ADMIN_TELEGRAM_IDS"),
			InitDataMaxAge:   getEnvAsDuration("INIT_DATA_MAX_AGE", 24*time.Hour),
		},
		Providers: ProviderConfig{
			KieAPIKey:   getEnv("KIE_API_KEY", ""),
			KieBaseURL:  getEnv("KIE_BASE_URL", "https://api.kie.ai"),
			PoyoAPIKey:  getEnv("POYO_API_KEY", ""),
			PoyoBaseURL: getEnv("POYO_BASE_URL", "https://api.poyo.ai"),
		},
		Midtrans: MidtransConfig{
			ServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			IsProduction: getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true",
		},
		Bonus: BonusConfig{
			WelcomeTokens:  getEnvAsInt("WELCOME_BONUS_TOKENS", 10),
			ReferralTokens: getEnvAsInt("REFERRAL_BONUS_TOKENS", 5),
		},
		Worker: WorkerConfig{
			PollInterval:    getEnvAsDuration("GENERATION_POLL_INTERVAL", 3*time.Second),
			ImageTimeout:    getEnvAsDuration("IMAGE_GENERATION_TIMEOUT", 6*time.Minute),
			VideoTimeout:    getEnvAsDuration("VIDEO_GENERATION_TIMEOUT", 15*time.Minute),
			DownloadTimeout: getEnvAsDuration("RESULT_DOWNLOAD_TIMEOUT", 2*time.Minute),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./uploads"),
			MaxImageSize: int64(getEnvAsInt("MAX_IMAGE_UPLOAD_MB", 10)) << 20,
			MaxVideoSize: int64(getEnvAsInt("MAX_VIDEO_UPLOAD_MB", 200)) << 20,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64Slice(key string) []int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
