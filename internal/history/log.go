// Package history enumerates the ancestry of a version graph in
// reverse-chronological order and renders it as a log.
package history

import (
	"github.com/cityjson/cjv/internal/versioning"
)

// Entry is one rendered version in the log.
type Entry struct {
	Name     string
	Author   string
	Message  string
	Date     string
	Parents  []string
	Branches []string
	Tags     []string
	Merge    bool
}

// Log walks the graph backwards from ref and returns one entry per reachable
// version. An empty ref starts from every structural tip. Ordering is
// children-first: a version never appears before a reachable child, ties
// broken by root discovery order then version name. Each version appears
// exactly once no matter how many paths lead to it; versions unreachable from
// the roots are excluded.
func Log(g *versioning.Graph, ref string) ([]Entry, error) {
	var roots []*versioning.Version
	if ref == "" {
		roots = g.Tips()
	} else {
		v, err := g.Resolve(ref)
		if err != nil {
			return nil, err
		}
		roots = []*versioning.Version{v}
	}

	// Reachable set, then per-version count of reachable children. A version
	// becomes ready once every reachable child has been emitted.
	reachable := map[string]*versioning.Version{}
	var mark func(v *versioning.Version)
	mark = func(v *versioning.Version) {
		if _, ok := reachable[v.Name]; ok {
			return
		}
		reachable[v.Name] = v
		for _, parent := range g.Parents(v) {
			mark(parent)
		}
	}
	for _, root := range roots {
		mark(root)
	}

	pendingChildren := map[string]int{}
	for _, v := range reachable {
		for _, parent := range v.Parents {
			pendingChildren[parent]++
		}
	}

	var queue []*versioning.Version
	for _, root := range roots {
		if pendingChildren[root.Name] == 0 {
			queue = append(queue, root)
		}
	}

	entries := make([]Entry, 0, len(reachable))
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		entries = append(entries, Entry{
			Name:     v.Name,
			Author:   v.Author,
			Message:  v.Message,
			Date:     v.Date,
			Parents:  v.Parents,
			Branches: g.BranchesOf(v.Name),
			Tags:     g.TagsOf(v.Name),
			Merge:    v.IsMerge(),
		})

		for _, parent := range g.Parents(v) {
			pendingChildren[parent.Name]--
			if pendingChildren[parent.Name] == 0 {
				queue = append(queue, parent)
			}
		}
	}

	return entries, nil
}
