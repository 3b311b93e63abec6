// Package versioning models the version DAG of a versioned CityJSON file:
// named versions linked by parent references, branch and tag pointers, and
// the revision-keyed object store the versions bind into.
//
// Versions reference each other by name, never by pointer; edges are resolved
// by map lookup and the child relation is derived on demand by inverting the
// parent relation. The graph is built once from the parsed document,
// validated, and read-only from then on.
package versioning

import (
	"fmt"
	"sort"

	"github.com/cityjson/cjv/internal/cityjson"
)

// Version is one node of the DAG. Author, Message and Date are display-only.
// Bindings is the complete object index visible at this version: object ID to
// revision tag, not a diff against the parents.
type Version struct {
	Name     string
	Author   string
	Message  string
	Date     string
	Parents  []string
	Bindings map[string]string
}

// IsMerge reports whether the version has two or more parents.
func (v *Version) IsMerge() bool {
	return len(v.Parents) >= 2
}

// Graph is the validated version DAG plus its branch and tag pointers.
type Graph struct {
	versions map[string]*Version
	branches map[string]string
	tags     map[string]string
}

// NewGraph builds and validates a graph from a parsed versioning section.
// Any validation failure is fatal: the returned graph is nil and must not
// be used.
func NewGraph(src *cityjson.Versioning) (*Graph, error) {
	// The container parser records version-name collisions the JSON decoder
	// would otherwise swallow (last duplicate key wins).
	if len(src.DuplicateNames) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateVersion, src.DuplicateNames[0])
	}

	g := &Graph{
		versions: make(map[string]*Version, len(src.Versions)),
		branches: make(map[string]string, len(src.Branches)),
		tags:     make(map[string]string, len(src.Tags)),
	}

	for name, rec := range src.Versions {
		if err := g.add(&Version{
			Name:     name,
			Author:   rec.Author,
			Message:  rec.Message,
			Date:     rec.Date,
			Parents:  rec.Parents,
			Bindings: rec.Objects,
		}); err != nil {
			return nil, err
		}
	}
	for branch, target := range src.Branches {
		g.branches[branch] = target
	}
	for tag, target := range src.Tags {
		g.tags[tag] = target
	}

	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) add(v *Version) error {
	if _, exists := g.versions[v.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVersion, v.Name)
	}
	g.versions[v.Name] = v
	return nil
}

// validate checks the structural invariants: every parent, branch and tag
// reference names an existing version, and the parent relation is acyclic.
// Cycles are found by depth-first traversal with an on-stack set; revisiting
// a version still on the active stack signals a cycle.
func (g *Graph) validate() error {
	for _, v := range g.versions {
		for _, parent := range v.Parents {
			if _, ok := g.versions[parent]; !ok {
				return fmt.Errorf("%w: version %q lists unknown parent %q",
					ErrDanglingRef, v.Name, parent)
			}
		}
	}
	for branch, target := range g.branches {
		if _, ok := g.versions[target]; !ok {
			return fmt.Errorf("%w: branch %q points at unknown version %q",
				ErrDanglingRef, branch, target)
		}
	}
	for tag, target := range g.tags {
		if _, ok := g.versions[target]; !ok {
			return fmt.Errorf("%w: tag %q points at unknown version %q",
				ErrDanglingRef, tag, target)
		}
	}

	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.versions))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case onStack:
			return fmt.Errorf("%w: version %q is its own ancestor", ErrCycle, name)
		}
		state[name] = onStack
		for _, parent := range g.versions[name].Parents {
			if err := visit(parent); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for _, name := range g.sortedNames() {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// Resolve maps a ref to a version. Lookup order is version name, then
// branch, then tag, matching the resolution order of the versioned CityJSON
// prototype; a version name therefore shadows a branch of the same name.
func (g *Graph) Resolve(ref string) (*Version, error) {
	if v, ok := g.versions[ref]; ok {
		return v, nil
	}
	if target, ok := g.branches[ref]; ok {
		return g.versions[target], nil
	}
	if target, ok := g.tags[ref]; ok {
		return g.versions[target], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRef, ref)
}

// Parents returns a version's parents in recorded order. Validation
// guarantees every parent exists.
func (g *Graph) Parents(v *Version) []*Version {
	parents := make([]*Version, len(v.Parents))
	for i, name := range v.Parents {
		parents[i] = g.versions[name]
	}
	return parents
}

// Tips returns the versions no other version lists as a parent, sorted by
// name. Branch pointers play no part: a tip is structural.
func (g *Graph) Tips() []*Version {
	hasChild := make(map[string]bool, len(g.versions))
	for _, v := range g.versions {
		for _, parent := range v.Parents {
			hasChild[parent] = true
		}
	}

	var tips []*Version
	for _, name := range g.sortedNames() {
		if !hasChild[name] {
			tips = append(tips, g.versions[name])
		}
	}
	return tips
}

// BranchesOf returns the branch labels pointing at the named version, sorted.
func (g *Graph) BranchesOf(name string) []string {
	return labelsOf(g.branches, name)
}

// TagsOf returns the tag labels pointing at the named version, sorted.
func (g *Graph) TagsOf(name string) []string {
	return labelsOf(g.tags, name)
}

func labelsOf(pointers map[string]string, name string) []string {
	var labels []string
	for label, target := range pointers {
		if target == name {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Versions returns every version in the graph, sorted by name.
func (g *Graph) Versions() []*Version {
	names := g.sortedNames()
	versions := make([]*Version, len(names))
	for i, name := range names {
		versions[i] = g.versions[name]
	}
	return versions
}

// Len returns the number of versions in the graph.
func (g *Graph) Len() int {
	return len(g.versions)
}

func (g *Graph) sortedNames() []string {
	names := make([]string, 0, len(g.versions))
	for name := range g.versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
