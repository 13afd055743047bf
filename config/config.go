package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Token            string
	DateTimeFormat   string
	AppointmentsFile string
	// APIPort enables the status HTTP server when set.
	APIPort string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ no .env file found, falling back to environment variables")
	}

	layout := os.Getenv("DISCORD_DATE_TIME_FORMAT")
	if layout == "" {
		layout = "02.01.2006 15:04"
	}
	file := os.Getenv("DISCORD_APPOINTMENTS_FILE")
	if file == "" {
		file = "appointments.json"
	}

	return &Config{
		Token:            os.Getenv("DISCORD_TOKEN"),
		DateTimeFormat:   layout,
		AppointmentsFile: file,
		APIPort:          os.Getenv("API_PORT"),
	}
}
