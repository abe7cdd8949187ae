package vocab

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlCategory is the on-disk shape of a category, keyed by its ID.
type yamlCategory struct {
	Name   string            `yaml:"name"`
	Icon   string            `yaml:"icon,omitempty"`
	Order  int               `yaml:"order,omitempty"`
	Levels map[int]yamlLevel `yaml:"levels"`
}

type yamlLevel struct {
	Name       string `yaml:"name"`
	Vocabulary []Item `yaml:"vocabulary"`
}

// ParseYAML parses a library keyed by category ID.
func ParseYAML(data []byte) (*Library, error) {
	var raw map[string]yamlCategory
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vocab: yaml unmarshal: %w", err)
	}

	categories := make([]Category, 0, len(raw))
	for id, yc := range raw {
		cat := Category{ID: id, Name: yc.Name, Icon: yc.Icon, Order: yc.Order}
		for n, yl := range yc.Levels {
			cat.Levels = append(cat.Levels, Level{
				Number:     n,
				Name:       yl.Name,
				Vocabulary: validItems(yl.Vocabulary),
			})
		}
		categories = append(categories, cat)
	}
	return NewLibrary(categories), nil
}

// MarshalYAML writes a library in the format ParseYAML reads.
func MarshalYAML(lib *Library) ([]byte, error) {
	out := make(map[string]yamlCategory)
	for i, c := range lib.Categories() {
		yc := yamlCategory{
			Name:   c.Name,
			Icon:   c.Icon,
			Order:  c.Order,
			Levels: make(map[int]yamlLevel, len(c.Levels)),
		}
		if yc.Order == 0 {
			yc.Order = i + 1
		}
		for _, lvl := range c.Levels {
			yc.Levels[lvl.Number] = yamlLevel{Name: lvl.Name, Vocabulary: lvl.Vocabulary}
		}
		out[c.ID] = yc
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("vocab: yaml marshal: %w", err)
	}
	return data, nil
}

// validItems drops entries that cannot be shown or answered.
func validItems(items []Item) []Item {
	valid := items[:0:0]
	for _, it := range items {
		if it.Kanji == "" || it.Hiragana == "" {
			continue
		}
		valid = append(valid, it)
	}
	return valid
}
