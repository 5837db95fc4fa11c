package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pkdindustries/bytebot/internal/commands"
)

type commandFile struct {
	Commands []commands.Definition `yaml:"commands"`
}

// LoadCommands reads the command definitions file at path.
func LoadCommands(path string) ([]commands.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading commands file: %w", err)
	}
	defs, err := ParseCommands(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// ParseCommands decodes a command file. Unknown keys and unknown role names
// are errors. An empty document yields no commands.
func ParseCommands(r io.Reader) ([]commands.Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file commandFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing commands: %w", err)
	}

	for i, d := range file.Commands {
		if d.Trigger == "" {
			return nil, fmt.Errorf("command %d: prompt is required", i+1)
		}
	}
	return file.Commands, nil
}
