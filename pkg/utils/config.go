package utils

import "os"

type ServerConfig struct {
	HTTPAddr string
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("PLATEHUB_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return ServerConfig{HTTPAddr: addr}
}

type WeatherConfig struct {
	APIKey  string
	BaseURL string
}

func LoadWeatherConfig() WeatherConfig {
	base := os.Getenv("PLATEHUB_WEATHER_BASE_URL")
	if base == "" {
		base = "https://api.openweathermap.org/data/2.5/weather"
	}
	return WeatherConfig{
		APIKey:  os.Getenv("PLATEHUB_WEATHER_API_KEY"),
		BaseURL: base,
	}
}
