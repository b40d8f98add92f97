package config

type LoggerConfig struct {
	Level string
}

func NewLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level: "info",
	}
}
