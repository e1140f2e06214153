package domain

// OperationStatus is the terminal state of one processed operation.
type OperationStatus string

const (
	StatusWritten OperationStatus = "written"
	// StatusSkipped means the markdown held no callouts; nothing was written.
	StatusSkipped OperationStatus = "skipped"
	StatusFailed  OperationStatus = "failed"
)

// OperationResult records what happened to one operation id.
type OperationResult struct {
	OperationID string
	Status      OperationStatus
	// OutputPath is set when Status is StatusWritten.
	OutputPath string
	Err        error
}

// Succeeded reports whether the operation counts towards the success ratio.
func (r OperationResult) Succeeded() bool {
	return r.Status == StatusWritten || r.Status == StatusSkipped
}

// FileResult aggregates the outcomes for one OpenAPI document.
type FileResult struct {
	File       string
	Operations []OperationResult
	// Err is set when the file itself could not be processed.
	Err error
}

// Succeeded returns the number of operations that were written or skipped.
func (r FileResult) Succeeded() int {
	n := 0
	for _, op := range r.Operations {
		if op.Succeeded() {
			n++
		}
	}
	return n
}

// OK is true when the file was readable and every operation succeeded.
func (r FileResult) OK() bool {
	return r.Err == nil && r.Succeeded() == len(r.Operations)
}

// BatchResult aggregates the outcomes for a set of documents.
type BatchResult struct {
	Files []FileResult
}

// Succeeded returns the number of files whose every operation succeeded.
func (r BatchResult) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.OK() {
			n++
		}
	}
	return n
}

// OK is true only if every file succeeded. An empty batch is OK.
func (r BatchResult) OK() bool {
	return r.Succeeded() == len(r.Files)
}
