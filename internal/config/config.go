package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сервера симуляции.

type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	World   WorldConfig   `yaml:"world"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

type SimConfig struct {
	TickRate     int    `yaml:"tick_rate"`
	Workers      int    `yaml:"workers"`
	ElementsFile string `yaml:"elements_file"`
}

type WorldConfig struct {
	Seed         int64 `yaml:"seed"`
	ViewDistance int   `yaml:"view_distance_chunks"`
}

type StorageConfig struct {
	DataPath  string `yaml:"data_path"`
	SaveEvery int    `yaml:"save_every_seconds"`
}

type ServerConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

// GetTickRate возвращает частоту тиков симуляции в секунду
func (s *SimConfig) GetTickRate() int {
	return getIntWithEnvFallback(s.TickRate, "SAND_TICK_RATE", 60)
}

// GetWorkers возвращает число воркеров на группу чётности
func (s *SimConfig) GetWorkers() int {
	return getIntWithEnvFallback(s.Workers, "SAND_WORKERS", 4)
}

// GetElementsFile возвращает путь к YAML описанию материалов
func (s *SimConfig) GetElementsFile() string {
	if s.ElementsFile != "" {
		return s.ElementsFile
	}
	if env := os.Getenv("SAND_ELEMENTS_FILE"); env != "" {
		return env
	}
	return ""
}

// GetSeed возвращает сид генерации мира
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if env := os.Getenv("SAND_WORLD_SEED"); env != "" {
		if seed, err := strconv.ParseInt(env, 10, 64); err == nil {
			return seed
		}
	}
	return 1337
}

// GetViewDistance возвращает радиус активных чанков вокруг наблюдателя
func (w *WorldConfig) GetViewDistance() int {
	return getIntWithEnvFallback(w.ViewDistance, "SAND_VIEW_DISTANCE", 4)
}

// GetDataPath возвращает путь к базе данных мира
func (s *StorageConfig) GetDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	if env := os.Getenv("SAND_DATA_PATH"); env != "" {
		return env
	}
	return "./data/world"
}

// GetSaveEvery возвращает период автосохранения в секундах
func (s *StorageConfig) GetSaveEvery() int {
	return getIntWithEnvFallback(s.SaveEvery, "SAND_SAVE_EVERY", 30)
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(s.MetricsPort, "SAND_METRICS_PORT", 2112)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	// Если значение задано в конфиге и больше 0, используем его
	if configVal > 0 {
		return configVal
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	// Используем дефолтное значение
	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV SAND_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SAND_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
