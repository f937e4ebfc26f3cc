package store

import (
	"encoding/json"

	"github.com/vegasq/mochadb/errors"
)

// Marshal encodes a tree as JSON.
func Marshal(root *Node) ([]byte, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	return data, nil
}

// Unmarshal decodes a tree produced by Marshal.
func Unmarshal(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "decode document")
	}
	return &root, nil
}
