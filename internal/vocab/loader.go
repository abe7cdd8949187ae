package vocab

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data/vocabulary.yaml
var defaultYAML []byte

// Default returns the built-in library.
func Default() (*Library, error) {
	return ParseYAML(defaultYAML)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".xlsx"}
}

// LoadFile loads a library from a YAML or XLSX file, chosen by extension.
func LoadFile(path string) (*Library, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("vocab: reading file %s: %w", path, err)
		}
		lib, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("vocab: parsing file %s: %w", path, err)
		}
		return lib, nil
	case ".xlsx":
		lib, _, err := LoadXLSX(XLSXOptions{Path: path})
		return lib, err
	default:
		return nil, fmt.Errorf("vocab: unsupported extension: %s", ext)
	}
}

// Load returns the library at path, or the built-in one when path is empty.
// An empty result is an error so callers can report it once.
func Load(path string) (*Library, error) {
	var (
		lib *Library
		err error
	)
	if path == "" {
		lib, err = Default()
	} else {
		lib, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if lib.Empty() {
		return nil, fmt.Errorf("vocab: no playable levels in %q", path)
	}
	return lib, nil
}
