package namer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	nameModel  = "@cf/meta/llama-3.1-8b-instruct"
	guardModel = "@hf/thebloke/llamaguard-7b-awq"
)

const namePrompt = `You are a team name generator for a game called Clicky Block.

The user is going to give you context about the team members.

Your job is create a new creative fun team name based on the makeup of the team.

Ensure to incorporate their names an their locations in the creative process.

Return only the team name, do not include an introduction or prefix, just the team name.
`

// APIClient calls the Cloudflare Workers AI REST API. It implements the
// Namer interface.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	accountID  string
	apiToken   string
}

var _ Namer = (*APIClient)(nil)

// NewClient creates a Workers AI client for the given account.
func NewClient(accountID, apiToken string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    "https://api.cloudflare.com/client/v4",
		accountID:  accountID,
		apiToken:   apiToken,
	}
}

// TeamName generates a display name from the team's roster context.
func (c *APIClient) TeamName(ctx context.Context, members []Player) (string, error) {
	roster, err := json.Marshal(members)
	if err != nil {
		return "", fmt.Errorf("failed to marshal roster context: %w", err)
	}

	body := chatRequest{
		Messages: []message{
			{Role: "system", Content: namePrompt},
			{Role: "user", Content: string(roster)},
		},
	}
	response, err := c.run(ctx, nameModel, body)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(response), `"`))
	if name == "" {
		return "", fmt.Errorf("name generator returned an empty response")
	}
	log.Debug("Generated team name", "name", name)
	return name, nil
}

// Unsafe runs the llamaguard classifier over text. The first line of the
// verdict is "safe" or "unsafe".
func (c *APIClient) Unsafe(ctx context.Context, text string) (bool, error) {
	response, err := c.run(ctx, guardModel, promptRequest{Prompt: guardPrompt(text)})
	if err != nil {
		return false, err
	}
	return strings.Contains(response, "unsafe"), nil
}

func (c *APIClient) run(ctx context.Context, model string, payload any) (string, error) {
	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.BaseURL, c.accountID, model)

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	log.Debug("Requesting Workers AI", "model", model)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Workers AI", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var aiResp aiResponse
	if err := json.NewDecoder(resp.Body).Decode(&aiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !aiResp.Success {
		return "", fmt.Errorf("workers ai reported failure for model %s", model)
	}
	return aiResp.Result.Response, nil
}
