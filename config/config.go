package config

type AppConfig struct {
	HeapConfig   *HeapConfig
	LoggerConfig *LoggerConfig
}

func New() *AppConfig {
	return &AppConfig{
		HeapConfig:   NewHeapConfig(),
		LoggerConfig: NewLoggerConfig(),
	}
}
