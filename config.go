package othello

import (
	"encoding/json"
	"io"

	"github.com/othellobot/othello/mcts"
	"github.com/othellobot/othello/search"
	"github.com/pkg/errors"
)

// DefaultBook is the opening line the Bot follows for as long as it stays legal.
const DefaultBook = "F5D6C3D3C4F4F6F3E6E7D7C5B6D8C6C7D2B5A5A6A7G5E3B4C8G6G4C2E8D1"

// Config configures a Bot and the engines it drives.
type Config struct {
	Name string `json:"name"`

	UseBook    bool   `json:"use_book"`
	Book       string `json:"book"`        // moves in "F5D6..." notation, one per half-move
	SafeFilter bool   `json:"safe_filter"` // play the greedy safe move in the opening instead of searching
	MCTSBudget int    `json:"mcts_budget"` // iterations per MCTS call

	Search search.Config `json:"search"`
	MCTS   mcts.Config   `json:"mcts"`
}

func DefaultConfig() Config {
	return Config{
		Name:       "othello",
		UseBook:    true,
		Book:       DefaultBook,
		SafeFilter: true,
		MCTSBudget: 2000,
		Search:     search.DefaultConfig(),
		MCTS:       mcts.DefaultConfig(),
	}
}

func (c Config) IsValid() bool {
	if _, err := ParseBook(c.Book); err != nil {
		return false
	}
	return c.MCTSBudget > 0 && c.Search.IsValid() && c.MCTS.IsValid()
}

// LoadConfig reads a JSON document over the default configuration. Fields missing from the document keep
// their default values. Durations are given in nanoseconds.
func LoadConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()
	if err := json.NewDecoder(r).Decode(&conf); err != nil {
		return conf, errors.Wrap(err, "Unable to decode config")
	}
	if _, err := ParseBook(conf.Book); err != nil {
		return conf, errors.WithMessage(err, "Invalid config")
	}
	if !conf.IsValid() {
		return conf, errors.New("Invalid config")
	}
	return conf, nil
}
