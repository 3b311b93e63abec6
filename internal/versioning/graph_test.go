package versioning

import (
	"errors"
	"testing"

	"github.com/cityjson/cjv/internal/cityjson"
)

// linearFixture builds v1 <- v2 with branch main -> v2 and tag first -> v1.
func linearFixture() *cityjson.Versioning {
	return &cityjson.Versioning{
		Versions: map[string]cityjson.VersionRecord{
			"v1": {
				Author:  "alice",
				Message: "Initial model",
				Date:    "2024-01-01T00:00:00Z",
				Objects: map[string]string{"Building-1": "r1"},
			},
			"v2": {
				Author:  "bob",
				Message: "Added bridge",
				Date:    "2024-02-01T00:00:00Z",
				Parents: []string{"v1"},
				Objects: map[string]string{"Building-1": "r1", "Bridge-1": "r1"},
			},
		},
		Branches: map[string]string{"main": "v2"},
		Tags:     map[string]string{"first": "v1"},
	}
}

func TestNewGraphValid(t *testing.T) {
	g, err := NewGraph(linearFixture())
	if err != nil {
		t.Fatalf("NewGraph failed on well-formed input: %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("expected 2 versions, got %d", g.Len())
	}
}

func TestNewGraphCycle(t *testing.T) {
	src := &cityjson.Versioning{
		Versions: map[string]cityjson.VersionRecord{
			"v1": {Parents: []string{"v3"}},
			"v2": {Parents: []string{"v1"}},
			"v3": {Parents: []string{"v2"}},
		},
	}
	_, err := NewGraph(src)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if !IsGraphError(err) {
		t.Error("cycle should be classified as a graph error")
	}
}

func TestNewGraphSelfParent(t *testing.T) {
	src := &cityjson.Versioning{
		Versions: map[string]cityjson.VersionRecord{
			"v1": {Parents: []string{"v1"}},
		},
	}
	if _, err := NewGraph(src); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle for self-parent, got %v", err)
	}
}

func TestNewGraphDanglingParent(t *testing.T) {
	src := &cityjson.Versioning{
		Versions: map[string]cityjson.VersionRecord{
			"v2": {Parents: []string{"v1"}},
		},
	}
	_, err := NewGraph(src)
	if !errors.Is(err, ErrDanglingRef) {
		t.Fatalf("expected ErrDanglingRef, got %v", err)
	}
}

func TestNewGraphDanglingBranchAndTag(t *testing.T) {
	tests := []struct {
		name string
		src  *cityjson.Versioning
	}{
		{
			name: "branch",
			src: &cityjson.Versioning{
				Versions: map[string]cityjson.VersionRecord{"v1": {}},
				Branches: map[string]string{"main": "v9"},
			},
		},
		{
			name: "tag",
			src: &cityjson.Versioning{
				Versions: map[string]cityjson.VersionRecord{"v1": {}},
				Tags:     map[string]string{"release": "v9"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGraph(tt.src); !errors.Is(err, ErrDanglingRef) {
				t.Fatalf("expected ErrDanglingRef, got %v", err)
			}
		})
	}
}

func TestNewGraphDuplicateVersionName(t *testing.T) {
	src := &cityjson.Versioning{
		Versions:       map[string]cityjson.VersionRecord{"v1": {}},
		DuplicateNames: []string{"v1"},
	}
	_, err := NewGraph(src)
	if !errors.Is(err, ErrDuplicateVersion) {
		t.Fatalf("expected ErrDuplicateVersion, got %v", err)
	}
	if !IsGraphError(err) {
		t.Error("duplicate name should be classified as a graph error")
	}
}

func TestAddDuplicate(t *testing.T) {
	g := &Graph{versions: map[string]*Version{}}
	if err := g.add(&Version{Name: "v1"}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := g.add(&Version{Name: "v1"})
	if !errors.Is(err, ErrDuplicateVersion) {
		t.Fatalf("expected ErrDuplicateVersion, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	g, err := NewGraph(linearFixture())
	if err != nil {
		t.Fatal(err)
	}

	byName, err := g.Resolve("v2")
	if err != nil {
		t.Fatalf("Resolve(v2): %v", err)
	}
	byBranch, err := g.Resolve("main")
	if err != nil {
		t.Fatalf("Resolve(main): %v", err)
	}
	if byName != byBranch {
		t.Error("branch main should resolve to the same version as name v2")
	}

	byTag, err := g.Resolve("first")
	if err != nil {
		t.Fatalf("Resolve(first): %v", err)
	}
	if byTag.Name != "v1" {
		t.Errorf("tag first should resolve to v1, got %q", byTag.Name)
	}
}

func TestResolveUnknown(t *testing.T) {
	g, err := NewGraph(linearFixture())
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Resolve("v9")
	if !errors.Is(err, ErrUnknownRef) {
		t.Fatalf("expected ErrUnknownRef, got %v", err)
	}
}

// A version name shadows a branch of the same name, which in turn shadows a
// tag. This pins the resolution precedence.
func TestResolvePrecedence(t *testing.T) {
	src := &cityjson.Versioning{
		Versions: map[string]cityjson.VersionRecord{
			"v1":   {},
			"main": {Parents: []string{"v1"}},
		},
		Branches: map[string]string{"main": "v1"},
		Tags:     map[string]string{"main": "v1"},
	}
	g, err := NewGraph(src)
	if err != nil {
		t.Fatal(err)
	}
	v, err := g.Resolve("main")
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "main" {
		t.Errorf("version name should shadow branch: resolved to %q", v.Name)
	}
}

func TestParents(t *testing.T) {
	g, err := NewGraph(linearFixture())
	if err != nil {
		t.Fatal(err)
	}
	v2, _ := g.Resolve("v2")
	parents := g.Parents(v2)
	if len(parents) != 1 || parents[0].Name != "v1" {
		t.Errorf("unexpected parents of v2: %+v", parents)
	}
	v1, _ := g.Resolve("v1")
	if len(g.Parents(v1)) != 0 {
		t.Error("root version should have no parents")
	}
}

func TestTips(t *testing.T) {
	src := &cityjson.Versioning{
		Versions: map[string]cityjson.VersionRecord{
			"v1": {},
			"v2": {Parents: []string{"v1"}},
			"v3": {Parents: []string{"v1"}},
		},
	}
	g, err := NewGraph(src)
	if err != nil {
		t.Fatal(err)
	}
	tips := g.Tips()
	if len(tips) != 2 {
		t.Fatalf("expected 2 tips, got %d", len(tips))
	}
	// Sorted by name for determinism.
	if tips[0].Name != "v2" || tips[1].Name != "v3" {
		t.Errorf("unexpected tip order: %q, %q", tips[0].Name, tips[1].Name)
	}
}

func TestLabels(t *testing.T) {
	g, err := NewGraph(linearFixture())
	if err != nil {
		t.Fatal(err)
	}
	if got := g.BranchesOf("v2"); len(got) != 1 || got[0] != "main" {
		t.Errorf("BranchesOf(v2) = %v", got)
	}
	if got := g.BranchesOf("v1"); len(got) != 0 {
		t.Errorf("BranchesOf(v1) = %v, want none", got)
	}
	if got := g.TagsOf("v1"); len(got) != 1 || got[0] != "first" {
		t.Errorf("TagsOf(v1) = %v", got)
	}
}

func TestIsMerge(t *testing.T) {
	v := &Version{Name: "m", Parents: []string{"a", "b"}}
	if !v.IsMerge() {
		t.Error("two parents should flag a merge")
	}
	if (&Version{Name: "v", Parents: []string{"a"}}).IsMerge() {
		t.Error("one parent is not a merge")
	}
}
