package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Redis        Redis
	Matching     Matching
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	Addr     string
	Password string
}

// Matching holds the system-level tunables of the match pipeline.
type Matching struct {
	Threshold  float64 // minimum bidirectional score persisted as a match
	TopN       int     // cap per matching run
	ExpiryDays int     // suggested matches expire after this many days
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("MATCH_THRESHOLD", 60.0)
	viper.SetDefault("MATCH_TOP_N", 20)
	viper.SetDefault("MATCH_EXPIRY_DAYS", 14)
	viper.SetDefault("SERVER_PORT", "8080")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")

	config.Matching.Threshold = viper.GetFloat64("MATCH_THRESHOLD")
	config.Matching.TopN = viper.GetInt("MATCH_TOP_N")
	config.Matching.ExpiryDays = viper.GetInt("MATCH_EXPIRY_DAYS")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("port", config.Server.Port).Float64("threshold", config.Matching.Threshold).Msg("Config loaded")
	return &config, nil
}
