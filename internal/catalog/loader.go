package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoadFile reads a JSON array of routes from path and validates each record.
func LoadFile(path string) ([]Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog seed: %w", err)
	}
	defer f.Close()

	var routes []Route
	if err := json.NewDecoder(f).Decode(&routes); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	for i, r := range routes {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("invalid route at index %d (%q): %w", i, r.ID, err)
		}
	}

	return routes, nil
}
