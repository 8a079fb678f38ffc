package config

import (
	"gopkg.in/yaml.v2"
	"os"
)

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ConfigSchema struct {
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Remote struct {
		// Базовый URL публичного REST API с постами
		APIBaseURL string `yaml:"api_base_url"`
		// Адрес echo-сервера для чата
		ChatURL string `yaml:"chat_url"`
	} `yaml:"remote"`
	Redis    RedisConfig `yaml:"redis"`
	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`
	Archive struct {
		// Путь до sqlite-файла архива чата, пустая строка отключает архив
		Path string `yaml:"path"`
	} `yaml:"archive"`
	Chat struct {
		// Политика переподключения: fire-once или bounded-retry
		ReconnectPolicy string `yaml:"reconnect_policy"`
		// TTL ожидания эха в секундах
		PendingEchoTTL int `yaml:"pending_echo_ttl"`
	} `yaml:"chat"`
	Query struct {
		HistorySize int `yaml:"history_size"`
	} `yaml:"query"`
	Logs struct {
		Level string `yaml:"level"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	conf := &ConfigSchema{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return err
	}
	applyDefaults(conf)
	AppConfig = conf
	return nil
}

// applyDefaults заполняет незаданные поля значениями по умолчанию
func applyDefaults(conf *ConfigSchema) {
	if conf.Remote.APIBaseURL == "" {
		conf.Remote.APIBaseURL = "https://dummyjson.com"
	}
	if conf.Remote.ChatURL == "" {
		conf.Remote.ChatURL = "wss://echo.websocket.org"
	}
	if conf.Backend.Port == 0 {
		conf.Backend.Port = 8080
	}
	if conf.Chat.ReconnectPolicy == "" {
		conf.Chat.ReconnectPolicy = "fire-once"
	}
	if conf.Chat.PendingEchoTTL <= 0 {
		conf.Chat.PendingEchoTTL = 30
	}
	if conf.Query.HistorySize <= 0 {
		conf.Query.HistorySize = 50
	}
}
