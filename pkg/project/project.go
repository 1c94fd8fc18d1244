package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project document looked up inside a project directory.
const FileName = "project.yaml"

// Load reads a project from a YAML file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a project YAML document.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	return &p, nil
}

// LoadProject loads a project from a project directory.
// It looks for project.yaml in the given directory; a path to a file is
// loaded directly.
func LoadProject(path string) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}
	if !info.IsDir() {
		return Load(path)
	}
	return Load(filepath.Join(path, FileName))
}
