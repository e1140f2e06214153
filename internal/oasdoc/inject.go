package oasdoc

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/i2y/oasmint/internal/domain"
)

// DefaultExtension is the vendor extension carrying the page link.
const DefaultExtension = "x-mint"

// InjectResult reports what InjectDocsLink did to each operation.
type InjectResult struct {
	Added     []domain.Operation
	Skipped   []domain.Operation // extension already present
	MissingID []domain.Operation // no operationId; ID is empty
}

// InjectDocsLink adds {"href": "<hrefPrefix>/<operationId>"} under extension
// to every operation that has an operationId. The new key is placed directly
// after operationId. Operations that already carry the extension are left
// untouched.
func (d *Document) InjectDocsLink(extension, hrefPrefix string) InjectResult {
	if extension == "" {
		extension = DefaultExtension
	}
	prefix := strings.TrimRight(hrefPrefix, "/")

	var res InjectResult
	d.walkOperations(func(op operationNode) bool {
		id, ok := operationID(op.node)
		entry := domain.Operation{ID: id, Path: op.path, Method: op.method}
		switch {
		case !ok:
			res.MissingID = append(res.MissingID, entry)
		case lookup(op.node, extension) != nil:
			res.Skipped = append(res.Skipped, entry)
		default:
			insertAfter(op.node, keyOperationID, extension, hrefNode(prefix+"/"+id))
			res.Added = append(res.Added, entry)
		}
		return true
	})
	return res
}

func hrefNode(href string) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			scalarNode("!!str", "href"),
			scalarNode("!!str", href),
		},
	}
}

// insertAfter inserts key/value into mapping right after the entry for
// anchor, or at the end when anchor is absent.
func insertAfter(mapping *yaml.Node, anchor, key string, value *yaml.Node) {
	pair := []*yaml.Node{scalarNode("!!str", key), value}
	at := indexOf(mapping, anchor)
	if at < 0 {
		mapping.Content = append(mapping.Content, pair...)
		return
	}
	at += 2
	content := make([]*yaml.Node, 0, len(mapping.Content)+2)
	content = append(content, mapping.Content[:at]...)
	content = append(content, pair...)
	content = append(content, mapping.Content[at:]...)
	mapping.Content = content
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
