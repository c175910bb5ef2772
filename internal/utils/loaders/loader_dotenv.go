package loaders

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/traefik/paerser/cli"
)

// DotenvLoader loads a .env file into the process environment so that the
// env loader can pick the variables up afterwards. The setup wizard writes
// this file; a missing file is not an error.
type DotenvLoader struct {
	Path string
}

func (d *DotenvLoader) Load(_ []string, _ *cli.Command) (bool, error) {
	path := d.Path
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); err != nil {
		return false, nil
	}

	if err := godotenv.Load(path); err != nil {
		return false, err
	}

	log.Debug().Str("path", path).Msg("Loaded environment file")

	// Always report not-found so the remaining loaders still run; this
	// loader only seeds the process environment.
	return false, nil
}
