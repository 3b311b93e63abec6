package versioning

import "errors"

// Common errors returned by graph and store operations.
//
// These errors can be checked using errors.Is() for proper error handling:
//
//	if errors.Is(err, versioning.ErrUnknownRef) {
//	    // The requested name is neither a version, a branch nor a tag
//	}
var (
	// ErrCycle is returned when the parent relation contains a cycle.
	ErrCycle = errors.New("version graph contains a cycle")

	// ErrDanglingRef is returned when a parent, branch or tag names a
	// version that does not exist in the graph.
	ErrDanglingRef = errors.New("dangling version reference")

	// ErrDuplicateVersion is returned when two versions share a name.
	ErrDuplicateVersion = errors.New("duplicate version name")

	// ErrUnknownRef is returned when a ref resolves to neither a version
	// name, a branch nor a tag.
	ErrUnknownRef = errors.New("unknown ref")

	// ErrMissingRevision is returned when a version binds an
	// (object, revision) pair that is absent from the object store.
	ErrMissingRevision = errors.New("revision not in object store")
)

// IsGraphError returns true if the error indicates a malformed version graph.
// A graph that fails validation must not be used; there is no recovery short
// of fixing the source document.
func IsGraphError(err error) bool {
	return errors.Is(err, ErrCycle) ||
		errors.Is(err, ErrDanglingRef) ||
		errors.Is(err, ErrDuplicateVersion)
}
