package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog/log"
)

// ErrEmptyDocument is returned when the input holds no root node.
var ErrEmptyDocument = errors.New("document is empty")

// UnmarshalJSON decodes a node, treating an absent "visible" field as true
// the way host exports omit it for visible layers.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	aux := struct {
		*plain
		Visible *bool `json:"visible"`
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.Visible = aux.Visible == nil || *aux.Visible
	return nil
}

// Decode parses a JSON document tree.
func Decode(data []byte) (*Node, error) {
	var root *Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// DecodeLenient parses a JSON document tree, repairing common syntax damage
// (trailing commas, single quotes, unquoted keys) from hand-edited exports.
func DecodeLenient(data []byte) (*Node, error) {
	root, err := Decode(data)
	if err == nil || errors.Is(err, ErrEmptyDocument) {
		return root, err
	}
	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return nil, fmt.Errorf("%w (repair failed: %v)", err, repairErr)
	}
	log.Debug().Int("original_len", len(data)).Int("repaired_len", len(repaired)).Msg("document JSON repaired")
	return Decode([]byte(repaired))
}

// Encode renders a document tree as indented JSON.
func Encode(root *Node) ([]byte, error) {
	return json.MarshalIndent(root, "", "  ")
}

// ReadFile loads a document tree from disk.
func ReadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	root, err := DecodeLenient(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
