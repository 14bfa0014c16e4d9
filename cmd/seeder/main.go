package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"SEED_HOST": "http://localhost:8080",
		"SEED_GAME": "builderday",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

// join posts the signup form and extracts the assigned team id from the
// redirect target (/play/<game>/<teamId>).
func join(client *http.Client, host, username string) (string, error) {
	form := url.Values{"username": {username}}
	resp, err := client.PostForm(host+"/join", form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	parts := strings.Split(resp.Header.Get("Location"), "/")
	if len(parts) < 4 {
		return "", fmt.Errorf("unexpected redirect target %q", resp.Header.Get("Location"))
	}
	return parts[3], nil
}

func click(client *http.Client, host, game, teamID, username string) error {
	payload, _ := json.Marshal(map[string]string{"username": username})
	resp, err := client.Post(
		fmt.Sprintf("%s/api/click/%s/%s", host, game, teamID),
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	log.Info("Starting game seeder...")
	cfg := loadConfig()
	host := cfg["SEED_HOST"]
	game := cfg["SEED_GAME"]

	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	const numPlayers = 20
	const maxClicksPerPlayer = 50

	teams := make(map[string][]string)
	for i := 0; i < numPlayers; i++ {
		username := fmt.Sprintf("seed-player-%d", i)
		teamID, err := join(client, host, username)
		if err != nil {
			log.Fatalf("Failed to join player %s: %s", username, err)
		}
		teams[teamID] = append(teams[teamID], username)
	}
	log.Info("Players joined", "players", numPlayers, "teams", len(teams))

	startTime := time.Now()
	totalClicks := 0
	for teamID, members := range teams {
		for _, username := range members {
			clicks := rand.Intn(maxClicksPerPlayer)
			for i := 0; i < clicks; i++ {
				if err := click(client, host, game, teamID, username); err != nil {
					log.Fatalf("Failed to click for %s: %s", username, err)
				}
			}
			totalClicks += clicks
		}
	}

	log.Info("Seeding complete",
		"teams", len(teams),
		"clicks", totalClicks,
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
}
