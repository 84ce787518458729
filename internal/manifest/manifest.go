package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/framecast/internal/composition"
	"github.com/ivlev/framecast/internal/timeline"
)

// Manifest is the declarative timeline script: an ordered list of items
// replayed through the engine's append operations. It is an input document,
// not saved project state.
type Manifest struct {
	Version string `yaml:"version"`
	Items   []Item `yaml:"items"`
}

// Item describes one element to place. Kind is "media" or "text".
// Duration overrides the kind's default length when positive; 0 keeps the
// default.
type Item struct {
	Kind     string `yaml:"kind"`
	Source   string `yaml:"source,omitempty"`
	Text     string `yaml:"text,omitempty"`
	Duration int    `yaml:"duration,omitempty"`
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Read loads a manifest from a YAML file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Write saves a manifest to a YAML file.
func Write(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply replays the manifest items through the engine in document order.
// Every item goes through the same placement entry point as interactive
// appends, so the same validation applies.
func Apply(m *Manifest, eng *timeline.Engine) error {
	for i, it := range m.Items {
		kind, err := timeline.ParseKind(it.Kind)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}

		switch kind {
		case timeline.KindMedia:
			_, err = eng.AppendMediaClipFrames(it.Source, it.Duration)
		case timeline.KindText:
			_, err = eng.AppendTextOverlayFrames(it.Text, it.Duration)
		}
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// Snapshot converts a built sequence back into a normalized manifest with
// explicit durations, in composition order.
func Snapshot(seq composition.Sequence) *Manifest {
	m := &Manifest{Version: "1.0", Items: make([]Item, 0, len(seq))}
	for _, b := range seq {
		m.Items = append(m.Items, Item{
			Kind:     b.Kind.String(),
			Source:   b.Source,
			Text:     b.Text,
			Duration: b.DurationInFrames,
		})
	}
	return m
}
