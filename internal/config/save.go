package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveEngine updates the engine section of the config file.
// Comments and formatting are preserved by editing the yaml.Node tree in
// place rather than re-marshaling the whole Config.
func SaveEngine(configPath string, engine EngineConfig) error {
	if err := ValidateEngine(engine); err != nil {
		return err
	}

	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}
	engineNode := section(rootMapping(doc), "engine")
	setScalar(engineNode, "year_length_days", strconv.FormatFloat(engine.YearLengthDays, 'f', -1, 64))
	setScalar(engineNode, "span_years", strconv.FormatFloat(engine.SpanYears, 'f', -1, 64))

	return writeDocument(configPath, doc)
}

// SaveFlag sets a single feature flag in the flags section.
func SaveFlag(configPath, name string, enabled bool) error {
	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}
	setScalar(section(rootMapping(doc), "flags"), name, strconv.FormatBool(enabled))

	return writeDocument(configPath, doc)
}

// section returns the mapping under key, replacing a missing or non-mapping
// value with an empty mapping.
func section(root *yaml.Node, key string) *yaml.Node {
	node := lookupKey(root, key)
	if node != nil && node.Kind == yaml.MappingNode {
		return node
	}
	node = &yaml.Node{Kind: yaml.MappingNode}
	setKey(root, key, node)
	return node
}

// setScalar writes value under key, reusing an existing scalar node so its
// comments stay attached.
func setScalar(mapping *yaml.Node, key, value string) {
	if node := lookupKey(mapping, key); node != nil && node.Kind == yaml.ScalarNode {
		node.Value = value
		node.Tag = ""
		node.Style = 0
		return
	}
	setKey(mapping, key, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

func writeDocument(configPath string, doc *yaml.Node) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// readDocument parses the file into a document node, returning an empty
// document when the file does not exist.
func readDocument(configPath string) (*yaml.Node, error) {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is the user's config file
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	return &doc, nil
}

func rootMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		return doc.Content[0]
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	doc.Kind = yaml.DocumentNode
	doc.Content = []*yaml.Node{root}
	return root
}

func lookupKey(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			// Keep comments attached to the old value.
			value.HeadComment = mapping.Content[i+1].HeadComment
			value.LineComment = mapping.Content[i+1].LineComment
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// writeAtomic writes to a temp file in the same directory and renames it
// over the target.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".sarathi.yaml.tmp.*")
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

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
