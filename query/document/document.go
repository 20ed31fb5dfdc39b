// Package document loads query descriptions from YAML files. A file may
// hold several documents separated by "---".
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// Document is one statement in YAML form.
type Document struct {
	Name      string   `yaml:"name,omitempty"`
	Kind      string   `yaml:"kind"`
	Table     string   `yaml:"table"`
	Columns   []string `yaml:"columns,omitempty"`
	Values    Values   `yaml:"values,omitempty"`
	Where     string   `yaml:"where,omitempty"`
	Joins     []Join   `yaml:"joins,omitempty"`
	GroupBy   []string `yaml:"group_by,omitempty"`
	OrderBy   []Order  `yaml:"order_by,omitempty"`
	Limit     *int     `yaml:"limit,omitempty"`
	Offset    *int     `yaml:"offset,omitempty"`
	Returning []string `yaml:"returning,omitempty"`
}

// Join is a JOIN entry. On is a condition expression.
type Join struct {
	Kind  string `yaml:"kind,omitempty"`
	Table string `yaml:"table"`
	Alias string `yaml:"alias,omitempty"`
	On    string `yaml:"on"`
}

// Order is an ORDER BY entry.
type Order struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction,omitempty"`
}

// Values keeps the key order of a YAML mapping.
type Values ast.Values

// UnmarshalYAML decodes a mapping node in document order.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: values must be a mapping", node.Line)
	}
	out := make(Values, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i+1].Line, err)
		}
		out = append(out, ast.Assignment{Column: node.Content[i].Value, Value: value})
	}
	*v = out
	return nil
}

// MarshalYAML encodes the values as an ordered mapping.
func (v Values) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range v {
		val := &yaml.Node{}
		if err := val.Encode(a.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: a.Column}, val)
	}
	return node, nil
}

// Decode reads every document in r.
func Decode(r io.Reader) ([]Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []Document
	for {
		var d Document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document %d: %w", len(docs)+1, err)
		}
		d.Kind = strings.ToUpper(strings.TrimSpace(d.Kind))
		docs = append(docs, d)
	}
	return docs, nil
}

// Parse decodes every document in data.
func Parse(data []byte) ([]Document, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile reads and decodes path from fs.
func LoadFile(fs afero.Fs, path string) ([]Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	docs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// Encode writes docs as a multi-document YAML stream.
func Encode(w io.Writer, docs ...Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, d := range docs {
		if err := enc.Encode(d); err != nil {
			return err
		}
	}
	return enc.Close()
}
