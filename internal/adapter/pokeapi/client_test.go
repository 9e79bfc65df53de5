package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"pokesoul/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pokemonBody = `{
	"name": "charmander",
	"types": [{"type": {"name": "fire"}}],
	"abilities": [{"ability": {"name": "blaze"}}, {"ability": {"name": "solar-power"}}],
	"stats": [
		{"base_stat": 39, "stat": {"name": "hp"}},
		{"base_stat": 52, "stat": {"name": "attack"}},
		{"base_stat": 43, "stat": {"name": "defense"}},
		{"base_stat": 60, "stat": {"name": "special-attack"}},
		{"base_stat": 50, "stat": {"name": "special-defense"}},
		{"base_stat": 65, "stat": {"name": "speed"}}
	],
	"game_indices": [{}, {}, {}],
	"held_items": [{}],
	"moves": [{}, {}, {}, {}, {}, {}, {}, {}, {}, {}],
	"sprites": {"front_default": "https://img.example/charmander.png"},
	"cries": {"latest": "https://cries.example/charmander.ogg"}
}`

const speciesBody = `{
	"color": {"name": "red"},
	"habitat": {"name": "mountain"},
	"flavor_text_entries": [
		{"flavor_text": "ほのおポケモン", "language": {"name": "ja"}},
		{"flavor_text": "Obviously prefers\nhot places.\fBeware of fire.", "language": {"name": "en"}}
	]
}`

func newTestClient(baseURL string) *Client {
	return NewClient(config.PokeAPIConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	})
}

func TestGetPokemon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/charmander":
			w.Write([]byte(pokemonBody))
		case "/pokemon-species/charmander":
			w.Write([]byte(speciesBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	raw, err := client.GetPokemon(context.Background(), "Charmander")
	require.NoError(t, err)

	assert.Equal(t, "charmander", raw.Name)
	assert.Equal(t, []string{"fire"}, raw.Types)
	assert.Equal(t, "red", raw.Color)
	assert.Equal(t, "mountain", raw.Habitat)
	assert.Equal(t, []string{"blaze", "solar-power"}, raw.Abilities)
	assert.Equal(t, "Obviously prefers hot places. Beware of fire.", raw.FlavorText)
	assert.Equal(t, 52, raw.Stats["attack"])
	assert.Equal(t, 65, raw.Stats["speed"])
	assert.Equal(t, 3, raw.GameIndices)
	assert.Equal(t, 1, raw.HeldItems)
	assert.Equal(t, 10, raw.Moves)
}

func TestGetPokemonRetriesServerErrors(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pokemon/charmander" {
			attempts++
			if attempts < 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(pokemonBody))
			return
		}
		w.Write([]byte(speciesBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	raw, err := client.GetPokemon(context.Background(), "charmander")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "charmander", raw.Name)
}

func TestGetPokemonDoesNotRetryNotFound(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetPokemon(context.Background(), "missingno")
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestGetPokemonMissingFlavorText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pokemon/ditto" {
			w.Write([]byte(pokemonBody))
			return
		}
		w.Write([]byte(`{"color": {"name": "purple"}, "habitat": {"name": "urban"}, "flavor_text_entries": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	raw, err := client.GetPokemon(context.Background(), "ditto")
	require.NoError(t, err)
	assert.Equal(t, "No flavor text", raw.FlavorText)
}
