// Package oasdoc reads and edits OpenAPI JSON documents while keeping the
// original key order, so rewritten files diff cleanly against their source.
package oasdoc

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/i2y/oasmint/internal/domain"
)

const (
	keyPaths       = "paths"
	keyOperationID = "operationId"
)

// ErrNotObject is returned when the top level of a document is not an object.
var ErrNotObject = errors.New("document root is not an object")

// Document is an OpenAPI document held as an ordered node tree.
type Document struct {
	root *yaml.Node // MappingNode
}

// Parse decodes a JSON (or YAML) OpenAPI document.
func Parse(data []byte) (*Document, error) {
	root, err := decodeNode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, ErrNotObject
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}
	return &Document{root: root}, nil
}

// HasPaths reports whether the document has a "paths" object.
func (d *Document) HasPaths() bool {
	paths := lookup(d.root, keyPaths)
	return paths != nil && paths.Kind == yaml.MappingNode
}

// operationNode is an operation object together with where it lives.
type operationNode struct {
	path   string
	method string
	node   *yaml.Node
}

// walkOperations visits every operation object in document path order and,
// within a path item, in domain.HTTPMethods order. fn returns false to stop.
func (d *Document) walkOperations(fn func(op operationNode) bool) {
	paths := lookup(d.root, keyPaths)
	if paths == nil || paths.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path, item := paths.Content[i].Value, paths.Content[i+1]
		if item.Kind != yaml.MappingNode {
			continue
		}
		for _, method := range domain.HTTPMethods {
			op := lookup(item, method)
			if op == nil || op.Kind != yaml.MappingNode {
				continue
			}
			if !fn(operationNode{path: path, method: method, node: op}) {
				return
			}
		}
	}
}

// Operations lists every operation that has an operationId.
func (d *Document) Operations() []domain.Operation {
	var ops []domain.Operation
	d.walkOperations(func(op operationNode) bool {
		if id, ok := operationID(op.node); ok {
			ops = append(ops, domain.Operation{ID: id, Path: op.path, Method: op.method})
		}
		return true
	})
	return ops
}

// OperationIDs lists the operationIds of Operations in the same order.
func (d *Document) OperationIDs() []string {
	ops := d.Operations()
	ids := make([]string, len(ops))
	for i, op := range ops {
		ids[i] = op.ID
	}
	return ids
}

// Locate finds the path and method of the operation with the given id.
// Duplicate ids are not rejected: the first one in walk order wins.
func (d *Document) Locate(id string) (path, method string, ok bool) {
	d.walkOperations(func(op operationNode) bool {
		if got, has := operationID(op.node); has && got == id {
			path, method, ok = op.path, op.method, true
			return false
		}
		return true
	})
	return path, method, ok
}

func operationID(op *yaml.Node) (string, bool) {
	n := lookup(op, keyOperationID)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

// lookup returns the value node stored under key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// indexOf returns the position of key's key node in mapping.Content, or -1.
func indexOf(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}
