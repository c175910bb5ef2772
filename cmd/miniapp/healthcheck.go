package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/collabland/discord-miniapp-framework/internal/controller"
	"github.com/collabland/discord-miniapp-framework/internal/utils"

	"github.com/cenkalti/backoff/v5"
	"github.com/traefik/paerser/cli"
)

type HealthcheckConfig struct {
	Wait bool `description:"Retry with backoff until the server reports healthy."`
}

func NewHealthcheckConfig() *HealthcheckConfig {
	return &HealthcheckConfig{
		Wait: false,
	}
}

func healthcheckCmd() *cli.Command {
	hCfg := NewHealthcheckConfig()

	loaders := []cli.ResourceLoader{
		&cli.FlagLoader{},
	}

	return &cli.Command{
		Name:          "healthcheck",
		Description:   "Perform a health check against a running server",
		Configuration: hCfg,
		Resources:     loaders,
		AllowArg:      true,
		Run: func(args []string) error {
			err := utils.NewSimpleLogger()

			if err != nil {
				return err
			}

			if len(args) == 0 {
				return errors.New("no server URL provided, usage: miniapp healthcheck http://localhost:3001")
			}

			serverURL := args[0]

			utils.Log.App.Info().Str("url", serverURL).Msg("Performing health check")

			if !hCfg.Wait {
				health, err := checkHealth(serverURL)
				if err != nil {
					return err
				}

				utils.Log.App.Info().Interface("response", health).Msg("Server is healthy")
				return nil
			}

			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = 500 * time.Millisecond
			exp.RandomizationFactor = 0.1
			exp.Multiplier = 1.5
			exp.Reset()

			operation := func() (controller.HealthResponse, error) {
				return checkHealth(serverURL)
			}

			health, err := backoff.Retry(context.TODO(), operation, backoff.WithBackOff(exp), backoff.WithMaxTries(10))

			if err != nil {
				return fmt.Errorf("server did not become healthy: %w", err)
			}

			utils.Log.App.Info().Interface("response", health).Msg("Server is healthy")

			return nil
		},
	}
}

func checkHealth(serverURL string) (controller.HealthResponse, error) {
	var health controller.HealthResponse

	client := http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest(http.MethodGet, serverURL+"/api/health", nil)

	if err != nil {
		return health, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)

	if err != nil {
		return health, fmt.Errorf("failed to perform request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return health, fmt.Errorf("server is not healthy, got: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return health, fmt.Errorf("failed to read response: %w", err)
	}

	err = json.Unmarshal(body, &health)

	if err != nil {
		return health, fmt.Errorf("failed to decode response: %w", err)
	}

	return health, nil
}
