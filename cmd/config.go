package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	LogLevel string

	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TotalsCacheSchedule  string
	TotalsCacheBatchSize int

	// ShipmentUpdateAmounts makes every shipment write recompute amounts.
	ShipmentUpdateAmounts bool
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables already set
// in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Env:                   v.GetString("ENV"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		TotalsCacheSchedule:   v.GetString("TOTALS_CACHE_SCHEDULE"),
		TotalsCacheBatchSize:  v.GetInt("TOTALS_CACHE_BATCH_SIZE"),
		ShipmentUpdateAmounts: v.GetBool("SHIPMENT_UPDATE_AMOUNTS"),
	}

	if cfg.TotalsCacheBatchSize <= 0 {
		return Config{}, fmt.Errorf("TOTALS_CACHE_BATCH_SIZE must be positive, got %d", cfg.TotalsCacheBatchSize)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "saleedit")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("TOTALS_CACHE_SCHEDULE", "0 * * * * *")
	v.SetDefault("TOTALS_CACHE_BATCH_SIZE", 100)
	v.SetDefault("SHIPMENT_UPDATE_AMOUNTS", false)
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
