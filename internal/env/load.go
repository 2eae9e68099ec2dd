package env

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file when one exists.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

// GetEnv returns the variable or def when it is unset or empty.
func GetEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

// GetFloat parses a float variable, returning def when unset.
func GetFloat(key string, def float64) (float64, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def, nil
	}
	return strconv.ParseFloat(val, 64)
}

// GetInt parses an int variable, returning def when unset.
func GetInt(key string, def int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def, nil
	}
	return strconv.Atoi(val)
}

// GetBool reports whether the variable is "true" or "1".
func GetBool(key string) bool {
	val := os.Getenv(key)
	return val == "true" || val == "1"
}
