// Package pokeapi is a client for the external Pokemon data source
// (https://pokeapi.co). It is only used by the catalog ingestion job;
// the matching engine never talks to the network.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"pokesoul/internal/config"
	"pokesoul/internal/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RawPokemon is the normalized shape of one Pokemon assembled from the
// pokemon and pokemon-species endpoints.
type RawPokemon struct {
	Name       string
	Types      []string
	Color      string
	Habitat    string
	Abilities  []string
	FlavorText string
	Stats      map[string]int

	ImageURL string
	CriesURL string

	// Raw counts used for popularity estimation.
	GameIndices int
	HeldItems   int
	Moves       int
}

// Client fetches Pokemon data with retry and per-request timeouts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
}

// NewClient creates a new PokeAPI client from configuration.
func NewClient(cfg config.PokeAPIConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: retries,
	}
}

type pokemonDocument struct {
	Name  string `json:"name"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	GameIndices []json.RawMessage `json:"game_indices"`
	HeldItems   []json.RawMessage `json:"held_items"`
	Moves       []json.RawMessage `json:"moves"`
	Sprites     struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Cries struct {
		Latest string `json:"latest"`
	} `json:"cries"`
}

type speciesDocument struct {
	Color struct {
		Name string `json:"name"`
	} `json:"color"`
	Habitat struct {
		Name string `json:"name"`
	} `json:"habitat"`
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"flavor_text_entries"`
}

// GetPokemon fetches and normalizes one Pokemon by name or numeric id.
func (c *Client) GetPokemon(ctx context.Context, nameOrID string) (*RawPokemon, error) {
	ident := strings.ToLower(strings.TrimSpace(nameOrID))

	var pokemon pokemonDocument
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon/%s", c.baseURL, ident), &pokemon); err != nil {
		return nil, fmt.Errorf("pokeapi: pokemon request failed for %q: %w", ident, err)
	}

	var species speciesDocument
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon-species/%s", c.baseURL, ident), &species); err != nil {
		return nil, fmt.Errorf("pokeapi: species request failed for %q: %w", ident, err)
	}

	raw := &RawPokemon{
		Name:        pokemon.Name,
		Color:       species.Color.Name,
		Habitat:     species.Habitat.Name,
		Stats:       map[string]int{},
		ImageURL:    pokemon.Sprites.FrontDefault,
		CriesURL:    pokemon.Cries.Latest,
		GameIndices: len(pokemon.GameIndices),
		HeldItems:   len(pokemon.HeldItems),
		Moves:       len(pokemon.Moves),
	}
	for _, t := range pokemon.Types {
		raw.Types = append(raw.Types, t.Type.Name)
	}
	for _, a := range pokemon.Abilities {
		raw.Abilities = append(raw.Abilities, a.Ability.Name)
	}
	for _, s := range pokemon.Stats {
		raw.Stats[s.Stat.Name] = s.BaseStat
	}

	// First English flavor text, with form feeds and newlines flattened.
	raw.FlavorText = "No flavor text"
	for _, entry := range species.FlavorTextEntries {
		if entry.Language.Name == "en" {
			text := strings.ReplaceAll(entry.FlavorText, "\n", " ")
			raw.FlavorText = strings.ReplaceAll(text, "\f", " ")
			break
		}
	}

	return raw, nil
}

// getJSON performs a GET request with retry (exponential backoff plus jitter)
// and decodes the JSON response body into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			if backoff > 10*time.Second {
				backoff = 10 * time.Second
			}
			jitter := time.Duration(rand.Int63n(int64(1500 * time.Millisecond)))
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return ctx.Err()
			}
			logger.Get().Debug("Retrying PokeAPI request",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
			)
		}

		lastErr = c.doGetJSON(ctx, url, out)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doGetJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "PokeSoul/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &requestError{cause: err, retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &requestError{
			cause:     fmt.Errorf("unexpected status %d", resp.StatusCode),
			retryable: resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

type requestError struct {
	cause     error
	retryable bool
}

func (e *requestError) Error() string {
	return e.cause.Error()
}

func (e *requestError) Unwrap() error {
	return e.cause
}

func isRetryable(err error) bool {
	reqErr, ok := err.(*requestError)
	return ok && reqErr.retryable
}
