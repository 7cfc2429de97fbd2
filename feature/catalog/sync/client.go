package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Set is a card set as returned by the Lorcast API.
type Set struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Card is a card as returned by the Lorcast API.
type Card struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Text      *string `json:"text"`
	Cost      *int    `json:"cost"`
	Strength  *int    `json:"strength"`
	Willpower *int    `json:"willpower"`
	Lore      *int    `json:"lore"`
	Rarity    *string `json:"rarity"`
	Ink       *string `json:"ink"`
	Type      []string `json:"type"`
	Set       *struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"set"`
	ImageURIs *struct {
		Digital struct {
			Normal string `json:"normal"`
		} `json:"digital"`
	} `json:"image_uris"`
}

// ImageURL returns the digital scan URL, or empty when the API has none.
func (c Card) ImageURL() string {
	if c.ImageURIs == nil {
		return ""
	}
	return c.ImageURIs.Digital.Normal
}

// Client is a minimal Lorcast API client covering the sync job's needs.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given API root (e.g. https://api.lorcast.com/v0).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Sets fetches all card sets.
func (c *Client) Sets(ctx context.Context) ([]Set, error) {
	var payload struct {
		Results []Set `json:"results"`
	}
	if err := c.getJSON(ctx, "/sets", &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// SetCards fetches every card of one set.
func (c *Client) SetCards(ctx context.Context, code string) ([]Card, error) {
	var cards []Card
	path := "/sets/" + url.PathEscape(code) + "/cards"
	if err := c.getJSON(ctx, path, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s failed: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
