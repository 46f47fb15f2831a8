package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DBDSN     string
	MediaDir  string
	LogFile   string
	JWTSecret string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "aquaroom.db"
	} // sqlite file in project root; use postgres:// for Supabase
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./aquaroom.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		log.Printf("[config] JWT_SECRET not set, using insecure dev default")
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile, JWTSecret: secret}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}
