// Package env loads the environment variable files.
package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/blocklords/ballot-token/app/configuration/argument"
	"github.com/joho/godotenv"
)

// DefaultPath is the .env in the folder from where the app is called.
const DefaultPath = ".env"

// LoadAnyEnv gets the list of all .env file paths in the command line argument.
// Then loads them up to the application's environment variables.
// If no path was passed, then the .env in the current directory is loaded if it exists.
//
// The already set environment variables are not overwritten.
func LoadAnyEnv() error {
	opts := argument.GetEnvPaths()

	if len(opts) == 0 {
		if _, err := os.Stat(DefaultPath); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		opts = []string{DefaultPath}
	}

	err := godotenv.Load(opts...)
	if err != nil {
		return fmt.Errorf("godotenv.Load for paths %v: %w", opts, err)
	}
	return nil
}
