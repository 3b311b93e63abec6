package cityjson

// Object is one city object payload. Attributes are arbitrary and pass
// through untouched; the only member this package interprets is "geometry",
// whose "boundaries" arrays hold indices into the document vertex table.
// Nesting depth of boundaries varies by geometry type (MultiSurface, Solid,
// CompositeSolid, ...), so the index walk is fully recursive.
type Object map[string]any

// geometries returns the object's geometry list, or nil when absent.
func (o Object) geometries() []any {
	geoms, _ := o["geometry"].([]any)
	return geoms
}

// VisitVertices calls fn for every vertex index referenced by the object's
// geometry boundaries, in document order. Indices reached through multiple
// surfaces are reported each time; callers dedupe.
func (o Object) VisitVertices(fn func(index int)) {
	for _, g := range o.geometries() {
		geom, ok := g.(map[string]any)
		if !ok {
			continue
		}
		visitBoundary(geom["boundaries"], fn)
	}
}

func visitBoundary(v any, fn func(index int)) {
	switch node := v.(type) {
	case []any:
		for _, child := range node {
			visitBoundary(child, fn)
		}
	case float64:
		// encoding/json decodes all numbers as float64.
		fn(int(node))
	}
}

// Remap returns a deep copy of the object with every boundary index rewritten
// through remap. Indices missing from remap are left unchanged; the snapshot
// assembler always supplies a complete mapping.
func (o Object) Remap(remap map[int]int) Object {
	out := make(Object, len(o))
	for k, v := range o {
		if k == "geometry" {
			out[k] = remapValue(v, remap)
			continue
		}
		out[k] = deepCopy(v)
	}
	return out
}

// remapValue copies v, rewriting indices under any "boundaries" member.
// Geometry members other than boundaries ("semantics", "lod", "type") index
// surfaces or carry metadata, not vertices, and are copied as-is.
func remapValue(v any, remap map[int]int) any {
	switch node := v.(type) {
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = remapValue(child, remap)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			if k == "boundaries" {
				out[k] = remapBoundary(child, remap)
			} else {
				out[k] = deepCopy(child)
			}
		}
		return out
	default:
		return node
	}
}

func remapBoundary(v any, remap map[int]int) any {
	switch node := v.(type) {
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = remapBoundary(child, remap)
		}
		return out
	case float64:
		if mapped, ok := remap[int(node)]; ok {
			return float64(mapped)
		}
		return node
	default:
		return node
	}
}

func deepCopy(v any) any {
	switch node := v.(type) {
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = deepCopy(child)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = deepCopy(child)
		}
		return out
	default:
		return node
	}
}
