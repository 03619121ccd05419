package config

import (
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first existing env file. Variables already present in
// the process environment are not overwritten.
func loadEnvFile() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				WithContext("path", name).Build()
		}
		return nil
	}
	return nil
}
