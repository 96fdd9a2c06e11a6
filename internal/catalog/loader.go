package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed data/animals.yaml
var defaultAnimalsYAML []byte

//go:embed data/stages.yaml
var defaultStagesYAML []byte

type animalsDoc struct {
	Animals []Animal `yaml:"animals" toml:"animals"`
}

type stagesDoc struct {
	Stages []Stage `yaml:"stages" toml:"stages"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load("", "")
}

// Load builds a catalog from the given animal and stage files.
// An empty path selects the embedded data for that half.
// Supported extensions: .yaml, .yml, .toml.
func Load(animalsPath, stagesPath string) (*Catalog, error) {
	var animals animalsDoc
	if err := decodeSource(animalsPath, defaultAnimalsYAML, &animals); err != nil {
		return nil, err
	}

	var stages stagesDoc
	if err := decodeSource(stagesPath, defaultStagesYAML, &stages); err != nil {
		return nil, err
	}

	return New(animals.Animals, stages.Stages)
}

func decodeSource(path string, embedded []byte, v any) error {
	if path == "" {
		if err := decodeYAML(embedded, v); err != nil {
			return fmt.Errorf("catalog: parsing embedded data: %w", err)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: reading %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, v)
	case ".toml":
		err = decodeTOML(data, v)
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return nil
}

// decodeYAML rejects unknown keys so typos in data files surface at load.
func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func decodeTOML(data []byte, v any) error {
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}
