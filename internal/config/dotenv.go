package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// loadDotEnv exports the variables of the given .env files into the process
// environment. Variables that are already set are left untouched.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}
