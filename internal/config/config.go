package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Logs      LogConfig
	Questions QuestionConfig
	Sessions  SessionConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey        string
	Model         string
	TTSModel      string
	Voice         string
	RemoteTimeout time.Duration
}

// Enabled reports whether remote generation, feedback and speech are available.
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
	KeepResumes bool
}

const (
	LogBackendFile     = "file"
	LogBackendPostgres = "postgres"
)

type LogConfig struct {
	Backend  string
	FilePath string
}

type QuestionConfig struct {
	CatalogPath          string
	GenericFieldFallback bool
	DefaultCount         int
}

type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "interview_coach"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_questions"),
		},
		Gemini: GeminiConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			Model:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			TTSModel:      getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
			Voice:         getEnv("GEMINI_VOICE", "Kore"),
			RemoteTimeout: getEnvAsDuration("REMOTE_TIMEOUT", "20s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			KeepResumes: getEnvAsBool("KEEP_RESUMES", false),
		},
		Logs: LogConfig{
			Backend:  getEnv("LOG_BACKEND", LogBackendFile),
			FilePath: getEnv("LOG_FILE", "./logs/interview_logs.json"),
		},
		Questions: QuestionConfig{
			CatalogPath:          getEnv("QUESTION_CATALOG_PATH", ""),
			GenericFieldFallback: getEnvAsBool("GENERIC_FIELD_FALLBACK", false),
			DefaultCount:         getEnvAsInt("DEFAULT_QUESTION_COUNT", 10),
		},
		Sessions: SessionConfig{
			IdleTTL:       getEnvAsDuration("SESSION_IDLE_TTL", "24h"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "1h"),
		},
	}
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Logs.Backend {
	case LogBackendFile:
		if c.Logs.FilePath == "" {
			return fmt.Errorf("LOG_FILE is required for the file log backend")
		}
	case LogBackendPostgres:
	default:
		return fmt.Errorf("unknown LOG_BACKEND %q", c.Logs.Backend)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}

	if c.Questions.DefaultCount <= 0 {
		return fmt.Errorf("DEFAULT_QUESTION_COUNT must be positive")
	}

	if c.Sessions.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
