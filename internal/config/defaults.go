package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4251,
			Host: "localhost",
		},
		Data: DataConfig{
			Source:       "embedded",
			Dir:          "./data",
			FetchTimeout: "30s",
			Locale:       "zh",
		},
		Storage: StorageConfig{
			Backend: "badger",
			Badger: BadgerConfig{
				Path: "./data/favorites",
			},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "wealth:",
			},
		},
		Cache: CacheConfig{
			TTL:        "30s",
			MaxEntries: 1000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "text",
			Outputs: []string{"console"},
		},
	}
}
