package domain

// HTTPMethods is the fixed set of path-item keys that can hold an operation,
// in the order they are visited.
var HTTPMethods = []string{
	"get",
	"post",
	"put",
	"delete",
	"patch",
	"head",
	"options",
	"trace",
}

// Operation identifies a single OpenAPI operation that carries an operationId.
type Operation struct {
	ID     string
	Path   string
	Method string
}

// OperationRef correlates generated content with the OpenAPI file, path and
// method it was produced for.
type OperationRef struct {
	// ReferenceFile is the file name of the source document, e.g. "coins.json".
	ReferenceFile string
	Path          string
	Method        string
}

// Complete reports whether all fields needed for a header are present.
func (r OperationRef) Complete() bool {
	return r.ReferenceFile != "" && r.Path != "" && r.Method != ""
}
