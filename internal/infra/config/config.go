/*
MIT License

Copyright (c) 2025 Первый Бит

Данная лицензия разрешает использование, копирование, изменение, слияние, публикацию, распространение,
лицензирование и/или продажу копий программного обеспечения при соблюдении следующих условий:

В вышеуказанном уведомлении об авторских правах и данном уведомлении о разрешении должны быть включены все копии
или значимые части программного обеспечения.

ПРОГРАММНОЕ ОБЕСПЕЧЕНИЕ ПРЕДОСТАВЛЯЕТСЯ "КАК ЕСТЬ", БЕЗ ГАРАНТИЙ ЛЮБОГО РОДА, ЯВНЫХ ИЛИ ПОДРАЗУМЕВАЕМЫХ,
ВКЛЮЧАЯ, НО НЕ ОГРАНИЧИВАЯСЬ, ГАРАНТИЯМИ КОММЕРЧЕСКОЙ ПРИГОДНОСТИ, СООТВЕТСТВИЯ ДЛЯ ОПРЕДЕЛЕННОЙ ЦЕЛИ И
НЕНАРУШЕНИЯ ПРАВ. НИ В КОЕМ СЛУЧАЕ АВТОРЫ ИЛИ ПРАВООБЛАДАТЕЛИ НЕ НЕСУТ ОТВЕТСТВЕННОСТИ ПО ИСКАМ,
УСЛОВИЯМ, ДАМГЕ или другим обязательствам, возникающим из, или в связи с использованием, или иным образом
связанным с данным программным обеспечением.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Типы хранилища
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
	StorageJSON     = "json"
)

// Режимы получения обновлений Telegram
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config содержит параметры конфигурации приложения
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Enabled      bool              `yaml:"enabled"`
		Token        string            `yaml:"token"`
		Username     string            `yaml:"username"`    // Имя бота для ссылок вида t.me/<username>?start=...
		Mode         string            `yaml:"mode"`        // "polling" или "webhook"
		WebhookURL   string            `yaml:"webhook_url"` // Публичный URL (используется, если Mode == "webhook")
		ListenAddr   string            `yaml:"listen_addr"` // Адрес для приема вебхуков
		PollInterval time.Duration     `yaml:"poll_interval"`
		Debug        bool              `yaml:"debug"`    // Логирование входящих обновлений
		Messages     map[string]string `yaml:"messages"` // Переопределение текстов бота
	} `yaml:"telegram_bot"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Storage struct {
		Type         string `yaml:"type"`          // "postgres", "memory" или "json"
		SnapshotPath string `yaml:"snapshot_path"` // Файл состояния для типа "json"
	} `yaml:"storage"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Training struct {
		PassingThreshold float64 `yaml:"passing_threshold"`
	} `yaml:"training"`
	Catalog struct {
		SeedPath      string `yaml:"seed_path"`       // YAML каталог модулей, импортируемый при старте
		UsersSeedPath string `yaml:"users_seed_path"` // YAML со списком пользователей
	} `yaml:"catalog"`
	Reports struct {
		FontDir string `yaml:"font_dir"`
	} `yaml:"reports"`
}

// LoadConfig загружает конфигурацию из YAML файла. Перед разбором подхватывается файл .env
// (если он существует), переменные окружения переопределяют значения из файла.
func LoadConfig(filename string) (*Config, error) {
	// Загружаем переменные окружения из файла .env (если файл существует)
	_ = godotenv.Load()

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			fmt.Println("f.Close() failed ", err)
		}
	}(f)

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, err
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv переопределяет секреты и тип хранилища из переменных окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBot.Token = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("BOT_MODE"); v != "" {
		c.TelegramBot.Mode = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.TelegramBot.Debug = debug
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = StoragePostgres
	}
	if c.Storage.Type == StorageJSON && c.Storage.SnapshotPath == "" {
		c.Storage.SnapshotPath = "data/visionhub.json"
	}
	if c.TelegramBot.Mode == "" {
		c.TelegramBot.Mode = ModePolling
	}
	if c.TelegramBot.ListenAddr == "" {
		c.TelegramBot.ListenAddr = ":8443"
	}
	if c.TelegramBot.PollInterval <= 0 {
		c.TelegramBot.PollInterval = 10 * time.Second
	}
	if c.Training.PassingThreshold == 0 {
		c.Training.PassingThreshold = 0.5
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("database.host and database.dbname are required for postgres storage"))
		}
	case StorageMemory, StorageJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.type %q", c.Storage.Type))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}

	if c.Training.PassingThreshold <= 0 || c.Training.PassingThreshold > 1 {
		errs = append(errs, fmt.Errorf("training.passing_threshold must be in (0, 1], got %v", c.Training.PassingThreshold))
	}

	if c.TelegramBot.Enabled {
		if c.TelegramBot.Token == "" {
			errs = append(errs, errors.New("telegram_bot.token is required when the bot is enabled"))
		}
		switch strings.ToLower(c.TelegramBot.Mode) {
		case ModePolling:
		case ModeWebhook:
			if c.TelegramBot.WebhookURL == "" {
				errs = append(errs, errors.New("telegram_bot.webhook_url is required in webhook mode"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown telegram_bot.mode %q", c.TelegramBot.Mode))
		}
	}

	return errors.Join(errs...)
}

// Addr адрес HTTP сервера
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
