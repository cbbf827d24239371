package deck

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteDeck writes a deck to a YAML file
func WriteDeck(d *Deck, path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadDeck reads and validates a deck from a YAML file
func ReadDeck(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode parses a YAML deck and validates it
func Decode(r io.Reader) (*Deck, error) {
	var d Deck
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDeck
		}
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}
