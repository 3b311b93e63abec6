package versioning

import (
	"fmt"
	"strings"

	"github.com/cityjson/cjv/internal/cityjson"
)

// RevisionKey is the composite primary key into the object store: one
// logical city object at one historical state.
type RevisionKey struct {
	ID       string
	Revision string
}

// In a versioned container every CityObjects key carries the revision tag
// after the last '@', e.g. "Building-42@r3".
const revisionSep = "@"

// SplitKey splits a composite container key into object ID and revision tag.
func SplitKey(key string) (RevisionKey, error) {
	i := strings.LastIndex(key, revisionSep)
	if i <= 0 || i == len(key)-1 {
		return RevisionKey{}, fmt.Errorf("city object key %q has no revision tag", key)
	}
	return RevisionKey{ID: key[:i], Revision: key[i+1:]}, nil
}

// ObjectStore holds every historical revision of every city object,
// addressed by (object ID, revision tag). Read-only after construction; the
// whole store is in memory for the lifetime of one invocation.
type ObjectStore struct {
	objects map[RevisionKey]cityjson.Object
}

// NewStore builds the store from a versioned document's CityObjects section.
func NewStore(doc *cityjson.Document) (*ObjectStore, error) {
	store := &ObjectStore{
		objects: make(map[RevisionKey]cityjson.Object, len(doc.CityObjects)),
	}
	for key, obj := range doc.CityObjects {
		rk, err := SplitKey(key)
		if err != nil {
			return nil, err
		}
		store.objects[rk] = obj
	}
	return store, nil
}

// Get returns the object payload for one (id, revision) pair. A miss means
// the graph and the store disagree; that is store corruption, reported via
// ErrMissingRevision and never retried.
func (s *ObjectStore) Get(id, revision string) (cityjson.Object, error) {
	obj, ok := s.objects[RevisionKey{ID: id, Revision: revision}]
	if !ok {
		return nil, fmt.Errorf("%w: object %q revision %q", ErrMissingRevision, id, revision)
	}
	return obj, nil
}

// Len returns the number of stored revisions.
func (s *ObjectStore) Len() int {
	return len(s.objects)
}
