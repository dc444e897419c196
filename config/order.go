package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// layerOrderFromFile recovers the declaration order of the layer IDs from
// the raw document. koanf unmarshals mappings into Go maps, which forget
// key order, but the order is the aggregator's tertiary sort key. yaml.v3
// parses JSON documents too, so one pass covers both formats.
func layerOrderFromFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	layers := findMapping(&doc, "schedule", "layers")
	if layers == nil || layers.Kind != yaml.MappingNode {
		return nil, nil
	}
	order := make([]string, 0, len(layers.Content)/2)
	for i := 0; i+1 < len(layers.Content); i += 2 {
		order = append(order, layers.Content[i].Value)
	}
	return order, nil
}

// findMapping walks mapping keys from the document root.
func findMapping(node *yaml.Node, keys ...string) *yaml.Node {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	for _, key := range keys {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		node = next
	}
	return node
}
