// Package fs provides file-based configuration loading, page reading and
// corpus output.
package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitesearch"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads, decodes, defaults and validates a configuration file.
// Files ending in ".toml" are decoded as TOML, everything else as JSON.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot be
// decoded or fails validation.
func LoadConfig(path string) (*sitesearch.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg *sitesearch.Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = DecodeTOMLConfig(data)
	} else {
		cfg, err = DecodeJSONConfig(data)
	}
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "parse config %q: %v", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeJSONConfig decodes a JSON configuration document.
func DecodeJSONConfig(data []byte) (*sitesearch.Config, error) {
	var cfg sitesearch.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DecodeTOMLConfig decodes a TOML configuration document into the same
// model as JSON. Keys of one inline table are taken in lexical order.
func DecodeTOMLConfig(data []byte) (*sitesearch.Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	j, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return DecodeJSONConfig(j)
}
