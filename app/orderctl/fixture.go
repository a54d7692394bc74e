package main

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/yoockh/bookwise/internal/models"
)

// fixtureTurn accepts both the backup field names and the shorter text/speaker
// spellings used in hand-written fixtures.
type fixtureTurn struct {
	ID        string  `yaml:"id"`
	Role      string  `yaml:"role"`
	Speaker   string  `yaml:"speaker"`
	Message   string  `yaml:"message"`
	Text      string  `yaml:"text"`
	Timestamp float64 `yaml:"timestamp"`
}

type fixture struct {
	RoomID      string        `yaml:"room_id"`
	UnitPrice   float64       `yaml:"unit_price"`
	Transcripts []fixtureTurn `yaml:"transcripts"`
}

// loadFixture reads a transcript. The document is either a mapping with a
// transcripts list or a bare list of turns. JSON parses as YAML.
func loadFixture(path string) (*fixture, []models.Utterance, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return parseFixture(b)
}

func parseFixture(b []byte) (*fixture, []models.Utterance, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil, fmt.Errorf("fixture is empty")
	}

	f := &fixture{}
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&f.Transcripts); err != nil {
			return nil, nil, fmt.Errorf("decode turns: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(f); err != nil {
			return nil, nil, fmt.Errorf("decode fixture: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("fixture must be a mapping or a list of turns")
	}

	utts := make([]models.Utterance, 0, len(f.Transcripts))
	for i, t := range f.Transcripts {
		role, text := t.Role, t.Message
		if role == "" {
			role = t.Speaker
		}
		if text == "" {
			text = t.Text
		}
		r, ok := models.ParseRole(role)
		if !ok {
			return nil, nil, fmt.Errorf("turn %d: unknown role %q", i+1, role)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		id := t.ID
		if id == "" {
			id = fmt.Sprintf("turn-%d", i+1)
		}
		utts = append(utts, models.Utterance{
			UtteranceID:   id,
			RoomID:        f.RoomID,
			Role:          r,
			Text:          text,
			SequenceIndex: int64(i + 1),
			Timestamp:     t.Timestamp,
		})
	}
	return f, utts, nil
}
