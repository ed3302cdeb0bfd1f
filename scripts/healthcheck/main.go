// Command healthcheck probes GET /api/health and exits non-zero when the
// server is not answering. Used as the container health check.
//
//	HEALTHCHECK_URL=http://localhost:5000 go run ./scripts/healthcheck
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

func main() {
	baseURL := os.Getenv("HEALTHCHECK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + getEnv("PORT", "5000")
	}

	if err := check(resty.New().SetTimeout(5*time.Second), baseURL); err != nil {
		log.Printf("Health check failed: %v", err)
		os.Exit(1)
	}
}

func check(client *resty.Client, baseURL string) error {
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	resp, err := client.R().
		SetResult(&body).
		Get(baseURL + "/api/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 || !body.Success {
		return fmt.Errorf("unexpected response %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
