// Package config loads tool configuration from files and the environment.
//
// It uses Viper to read config.yml, loads a .env file with godotenv, and
// lets environment variables override file values. With an env prefix of
// "ZOOM", ZOOM_API_KEY sets zoom.api_key and ZOOM_RETRY_MAX_RETRIES sets
// zoom.retry.max_retries.
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("zoomctl", &cfg, config.WithEnvPrefix("ZOOM"))
package config
