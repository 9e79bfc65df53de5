package dto

// BaseStatsResponse represents a candidate's six base stats in the API response
type BaseStatsResponse struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// PokemonResponse represents a Pokemon in the API response
type PokemonResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Types      []string          `json:"types"`
	Color      string            `json:"color,omitempty"`
	Habitat    string            `json:"habitat,omitempty"`
	Abilities  []string          `json:"abilities"`
	FlavorText string            `json:"flavor_text,omitempty"`
	BaseStats  BaseStatsResponse `json:"base_stats"`
	ImageURL   string            `json:"image_url,omitempty"`
	CriesURL   string            `json:"cries_url,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
