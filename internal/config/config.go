package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Quiz    QuizConfig
	Session SessionConfig
	Redis   RedisConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	CallTimeout time.Duration
}

type QuizConfig struct {
	// Default per-kind targets for the stateless flow.
	MCQTarget int
	TFTarget  int
	FIBTarget int
	// Default batch size for the incremental flow.
	NextBatchSize int
	// Most recent prompts embedded in the "avoid these" instruction block.
	AvoidListCap int
	// Hard cut on extracted text handed to the model, in characters.
	TextBudget int
	// TTL for cached stateless results; zero disables caching even when
	// Redis is configured.
	ResultCacheTTL time.Duration
}

type SessionConfig struct {
	TTL      time.Duration
	Capacity int
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads config.yaml (when present) and applies environment
// overrides. Every tunable has a working default so the server starts
// with nothing but GEMINI_API_KEY set.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Gemini: GeminiConfig{
			APIKey:      viper.GetString("gemini.api_key"),
			Model:       viper.GetString("gemini.model"),
			CallTimeout: viper.GetDuration("gemini.call_timeout"),
		},
		Quiz: QuizConfig{
			MCQTarget:      viper.GetInt("quiz.mcq_target"),
			TFTarget:       viper.GetInt("quiz.tf_target"),
			FIBTarget:      viper.GetInt("quiz.fib_target"),
			NextBatchSize:  viper.GetInt("quiz.next_batch_size"),
			AvoidListCap:   viper.GetInt("quiz.avoid_list_cap"),
			TextBudget:     viper.GetInt("quiz.text_budget"),
			ResultCacheTTL: viper.GetDuration("quiz.result_cache_ttl"),
		},
		Session: SessionConfig{
			TTL:      viper.GetDuration("session.ttl"),
			Capacity: viper.GetInt("session.capacity"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment variables win over the file.
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Minute)
	viper.SetDefault("server.body_limit", 25*1024*1024)

	viper.SetDefault("gemini.model", "gemini-1.5-pro")
	viper.SetDefault("gemini.call_timeout", 180*time.Second)

	viper.SetDefault("quiz.mcq_target", 30)
	viper.SetDefault("quiz.tf_target", 20)
	viper.SetDefault("quiz.fib_target", 10)
	viper.SetDefault("quiz.next_batch_size", 20)
	viper.SetDefault("quiz.avoid_list_cap", 80)
	viper.SetDefault("quiz.text_budget", 60000)
	viper.SetDefault("quiz.result_cache_ttl", time.Hour)

	viper.SetDefault("session.ttl", 6*time.Hour)
	viper.SetDefault("session.capacity", 200)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
}
