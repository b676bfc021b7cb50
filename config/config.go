package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AllowedOrigins []string
	Port           string
}

// Load reads .env (if present) and assembles the configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	cfg := &Config{
		MongoURI:  getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DBName:    getenv("DB_NAME", "campushub"),
		JWTSecret: getenv("JWT_SECRET", "supersecretkey"),
		Port:      getenv("PORT", "8080"),
	}

	// Origins supplied via env come first, then the defaults the
	// front end is known to deploy on.
	var origins []string
	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	if front := os.Getenv("FRONTEND_ORIGIN"); front != "" {
		origins = append(origins, front)
	}
	origins = append(origins,
		"http://localhost:3000",
		"http://localhost:5173",
	)
	cfg.AllowedOrigins = origins

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
