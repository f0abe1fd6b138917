package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL string
	LogLevel    string
	Timezone    string

	MergeCron      string
	MergeAdjacency string
	MergeOnStart   bool

	HolidaysFile string
	HolidayYears int

	TelegramToken string
	AdminChatID   int64
	TelegramDebug bool
}

var instance *Config
var once sync.Once

// GetConfig читает конфигурацию из окружения (и .env, если он есть) один раз
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded: %s", err.Error())
		}

		instance = Load()
		if err := instance.Validate(); err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
	})

	return instance
}

// Load собирает конфигурацию из переменных окружения без кеширования
func Load() *Config {
	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "leave_calendar.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("TIMEZONE", "Asia/Bangkok"),
		MergeCron:      getEnv("MERGE_CRON", "0 2 * * *"),
		MergeAdjacency: strings.ToLower(getEnv("MERGE_ADJACENCY", "calendar")),
		MergeOnStart:   getEnvAsBool("MERGE_ON_START", false),
		HolidaysFile:   getEnv("HOLIDAYS_FILE", ""),
		HolidayYears:   int(getEnvAsInt("HOLIDAY_YEARS", 2)),
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminChatID:    getEnvAsInt("ADMIN_CHAT_ID", 0),
		TelegramDebug:  getEnvAsBool("TELEGRAM_DEBUG", false),
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}
	if c.MergeCron == "" {
		return fmt.Errorf("MERGE_CRON is empty")
	}
	switch c.MergeAdjacency {
	case "calendar", "business":
	default:
		return fmt.Errorf("MERGE_ADJACENCY must be calendar or business, got %q", c.MergeAdjacency)
	}
	if c.HolidayYears <= 0 {
		return fmt.Errorf("HOLIDAY_YEARS must be positive")
	}
	if c.TelegramToken != "" && c.AdminChatID == 0 {
		return fmt.Errorf("ADMIN_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

// TelegramEnabled включен ли бот администратора
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}
