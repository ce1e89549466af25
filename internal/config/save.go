package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var boolKeys = []string{"verbose", "shell", "browse"}

// ParseValue converts the command-line form of a setting to the value
// stored in kr.yaml.
func ParseValue(key, raw string) (interface{}, error) {
	if !slices.Contains(Keys, key) {
		return nil, fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys, ", "))
	}

	switch {
	case slices.Contains(boolKeys, key):
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, raw)
		}
		return b, nil
	case key == "hosts":
		var hosts []interface{}
		for _, h := range cleanHosts(strings.Split(raw, ",")) {
			hosts = append(hosts, h)
		}
		return hosts, nil
	}
	return raw, nil
}

// SaveValue sets key in the kr.yaml at path, creating the file if needed.
// Existing keys, comments and ordering are preserved.
func SaveValue(path, key, raw string) error {
	value, err := ParseValue(key, raw)
	if err != nil {
		return err
	}

	var doc *yaml.Node
	var root *yaml.Node

	if content, err := os.ReadFile(path); err == nil {
		doc = &yaml.Node{}
		if err := yaml.Unmarshal(content, doc); err != nil {
			return fmt.Errorf("parsing existing config: %w", err)
		}
		if len(doc.Content) > 0 {
			root = doc.Content[0]
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	if root == nil || root.Kind != yaml.MappingNode {
		root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		doc = &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	}

	setValue(root, key, value)

	content, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func setValue(root *yaml.Node, key string, value interface{}) {
	replacement := interfaceToNode(value)
	for i := 0; i < len(root.Content); i += 2 {
		if root.Content[i].Value != key {
			continue
		}
		valueNode := root.Content[i+1]
		if valueNode.Kind == yaml.ScalarNode && replacement.Kind == yaml.ScalarNode {
			valueNode.Value = replacement.Value
			valueNode.Tag = replacement.Tag
			return
		}
		root.Content[i+1] = replacement
		return
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		replacement,
	)
}

func interfaceToNode(v interface{}) *yaml.Node {
	switch val := v.(type) {
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val)}
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(val)}
	case []interface{}:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			node.Content = append(node.Content, interfaceToNode(item))
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprintf("%v", val)}
	}
}
