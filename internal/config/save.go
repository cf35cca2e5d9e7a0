package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/settings"
)

const decorationKey = "decoration"

// SaveDecoration updates the decoration section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveDecoration(configPath string, blob map[string]any) error {
	node, err := buildDecorationNode(blob)
	if err != nil {
		return fmt.Errorf("building decoration node: %w", err)
	}
	return saveSection(configPath, decorationKey, node)
}

// saveSection replaces (or appends) one top-level key of the config file.
func saveSection(configPath, key string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config root must be a mapping")
	}

	found := false
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = value
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			value,
		)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}
	log.Debug(log.CatConfig, "Saved config section", "path", configPath, "key", key)
	return nil
}

// writeAtomic writes to a temp file and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".bulletdash.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// buildDecorationNode emits recognized keys in their documented order,
// followed by any other keys sorted by name.
func buildDecorationNode(blob map[string]any) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	seen := make(map[string]bool, len(blob))
	keys := make([]string, 0, len(blob))
	for _, k := range settings.Keys() {
		if _, ok := blob[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range blob {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	for _, k := range keys {
		var v yaml.Node
		if err := v.Encode(blob[k]); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&v,
		)
	}
	return node, nil
}

// LoadDecoration reads the decoration section straight from the file,
// keeping key case. A missing file or section yields a nil blob.
func LoadDecoration(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var doc struct {
		Decoration map[string]any `yaml:"decoration"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return doc.Decoration, nil
}

// FileRepository persists decoration settings in the config file's
// decoration section.
type FileRepository struct {
	path string
}

// NewFileRepository returns a repository backed by the config file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the config file path.
func (r *FileRepository) Path() string {
	return r.path
}

// Load implements settings.Repository.
func (r *FileRepository) Load(_ context.Context) (map[string]any, error) {
	return LoadDecoration(r.path)
}

// Save implements settings.Repository.
func (r *FileRepository) Save(_ context.Context, blob map[string]any) error {
	return SaveDecoration(r.path, blob)
}

var _ settings.Repository = (*FileRepository)(nil)
