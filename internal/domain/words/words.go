// Package words loads the secret word list and draws targets from it.
package words

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// List is the pool of candidate target words.
type List []string

// Load reads a JSON array of words, e.g. ["kite", "banana", ...].
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadList, err)
	}
	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadList, err)
	}
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

// Choose draws a word from the list using the provided random source.
// Selection is a pure function of list and rng, so tests can pin the
// draw with a fixed seed.
func Choose(list List, rng *rand.Rand) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyList
	}
	return list[rng.Intn(len(list))], nil
}
