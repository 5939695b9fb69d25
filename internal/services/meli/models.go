package meli

import (
	"encoding/json"
	"fmt"
)

// TokenResponse is the body of a MercadoLibre OAuth token exchange.
// The API can answer 200 with an error body, so AccessToken presence is
// the real success signal.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      int64  `json:"user_id"`
	Scope       string `json:"scope"`
	Error       string `json:"error"`
	Message     string `json:"message"`
}

// ScrollResponse is one page of the scan-type item search.
type ScrollResponse struct {
	Results  []string `json:"results"`
	ScrollID string   `json:"scroll_id"`
	Paging   Paging   `json:"paging"`
}

type Paging struct {
	Total int `json:"total"`
	Limit int `json:"limit"`
}

// Item is a remote catalog entry, possibly with variations.
type Item struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Price             float64     `json:"price"`
	AvailableQuantity int         `json:"available_quantity"`
	Status            string      `json:"status"`
	Variations        []Variation `json:"variations"`
}

// Variation is a sub-entry of an item distinguished by attribute
// combinations (size, color, ...), with its own stock.
type Variation struct {
	ID                    VariationID            `json:"id"`
	AvailableQuantity     int                    `json:"available_quantity"`
	AttributeCombinations []AttributeCombination `json:"attribute_combinations"`
}

// VariationID is an opaque variation identifier. MercadoLibre serves
// numeric ids today, but the id is only ever embedded verbatim into the
// composite "{itemID}-{variationID}" key, so both JSON numbers and JSON
// strings are accepted.
type VariationID string

func (v *VariationID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = VariationID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid variation id %s: %w", string(data), err)
	}
	*v = VariationID(n.String())
	return nil
}

type AttributeCombination struct {
	Name      string `json:"name"`
	ValueName string `json:"value_name"`
}
