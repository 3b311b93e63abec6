// Package snapshot materializes one version of a versioned CityJSON document
// as a plain, self-contained CityJSON document.
package snapshot

import (
	"fmt"
	"sort"

	"github.com/cityjson/cjv/internal/cityjson"
	"github.com/cityjson/cjv/internal/versioning"
)

// Assemble builds the de-versioned document for one version.
//
// Objects are walked in ascending object-ID order so repeated assembly of the
// same version is byte-identical. The output vertex table contains exactly
// the vertices the selected objects reference, in first-seen order,
// renumbered from zero; the source envelope (type, version, transform,
// metadata) passes through verbatim and the versioning section is dropped.
//
// On any failure no document is returned: a missing revision aborts assembly
// before anything is emitted.
func Assemble(src *cityjson.Document, store *versioning.ObjectStore, v *versioning.Version) (*cityjson.Document, error) {
	ids := make([]string, 0, len(v.Bindings))
	for id := range v.Bindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := src.EmptyCopy()
	remap := make(map[int]int)

	for _, id := range ids {
		obj, err := store.Get(id, v.Bindings[id])
		if err != nil {
			return nil, fmt.Errorf("assemble version %q: %w", v.Name, err)
		}

		var indexErr error
		obj.VisitVertices(func(index int) {
			if index < 0 || index >= len(src.Vertices) {
				if indexErr == nil {
					indexErr = fmt.Errorf("assemble version %q: object %q references vertex %d outside table of %d",
						v.Name, id, index, len(src.Vertices))
				}
				return
			}
			if _, seen := remap[index]; !seen {
				remap[index] = len(out.Vertices)
				// Copy the triple: the snapshot owns its vertex table and
				// shares no mutable state with the source.
				out.Vertices = append(out.Vertices, append([]float64(nil), src.Vertices[index]...))
			}
		})
		if indexErr != nil {
			return nil, indexErr
		}

		out.CityObjects[id] = obj.Remap(remap)
	}

	return out, nil
}
