package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"autobattler-client/pkg/api"

	"github.com/joho/godotenv"
)

// Config хранит параметры запуска клиента
type Config struct {
	// Endpoint - адрес сервера комнат (ws:// или wss://)
	Endpoint string
	// Room - комната, к которой клиент подключается при старте
	Room string
	// Codec - формат кадров: json или msgpack
	Codec string
	// JoinTimeout - ожидание ответа на подключение к лобби после kick-out
	JoinTimeout time.Duration
	// RecordDir - куда писать записи сессий. Пусто - не записывать.
	RecordDir string
	// DebugAddr - адрес отладочного HTTP. Пусто - выключен.
	DebugAddr string

	LogLevel  string
	LogFormat string
}

// Default создает конфиг по умолчанию
func Default() Config {
	return Config{
		Endpoint:    "ws://localhost:2567",
		Room:        "game",
		Codec:       api.CodecJSON,
		JoinTimeout: 10 * time.Second,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load читает .env (если есть) и переменные окружения поверх значений по умолчанию.
// Уже выставленные переменные окружения .env не перезаписывает.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Default()
	cfg.Endpoint = getEnv("AB_ENDPOINT", cfg.Endpoint)
	cfg.Room = getEnv("AB_ROOM", cfg.Room)
	cfg.Codec = strings.ToLower(getEnv("AB_CODEC", cfg.Codec))
	cfg.RecordDir = getEnv("AB_RECORD_DIR", cfg.RecordDir)
	cfg.DebugAddr = getEnv("AB_DEBUG_ADDR", cfg.DebugAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if raw, ok := os.LookupEnv("AB_JOIN_TIMEOUT"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("AB_JOIN_TIMEOUT: %w", err)
		}
		cfg.JoinTimeout = d
	}

	return cfg, nil
}

// Validate проверяет значения после применения флагов.
func (c Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("endpoint is empty"))
	}
	if c.Room == "" {
		errs = append(errs, errors.New("room is empty"))
	}
	if _, err := api.NewCodec(c.Codec); err != nil {
		errs = append(errs, err)
	}
	if c.JoinTimeout <= 0 {
		errs = append(errs, fmt.Errorf("join timeout must be positive, got %s", c.JoinTimeout))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
