package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads the env files that exist, .env by default; variables already set
// in the process win. It returns the files it loaded
func LoadEnv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return loaded, err
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
