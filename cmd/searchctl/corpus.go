package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/engine"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
)

// corpus is the YAML document list searchctl indexes on startup.
//
//	documents:
//	  - id: 1
//	    text: white cat and fancy collar
//	    status: actual
//	    ratings: [8, -3]
type corpus struct {
	Documents []corpusDocument `yaml:"documents"`
}

type corpusDocument struct {
	ID      int          `yaml:"id"`
	Text    string       `yaml:"text"`
	Status  index.Status `yaml:"status"`
	Ratings []int        `yaml:"ratings"`
}

func loadCorpus(path string) (*corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	var c corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing corpus %s: %w", path, err)
	}
	return &c, nil
}

// indexInto adds every document to e, stopping at the first rejected one.
func (c *corpus) indexInto(e *engine.Engine) error {
	for _, d := range c.Documents {
		if err := e.AddDocument(d.ID, d.Text, d.Status, d.Ratings); err != nil {
			return fmt.Errorf("indexing document %d: %w", d.ID, err)
		}
	}
	return nil
}
