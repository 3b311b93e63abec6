// Package cityjson models the CityJSON container format, both the plain and
// the versioned flavor.
//
// A Document splits the container into three parts: the city objects, the
// shared vertex table, and (for versioned files) the versioning section.
// Every other top-level member — "type", "version", "metadata", "transform",
// extensions — is kept as raw JSON and written back verbatim, since those
// members describe the coordinate system and format level, not content.
package cityjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Document is one parsed CityJSON container.
type Document struct {
	// CityObjects maps object key to object payload. In a versioned file the
	// key is the composite "<id>@<revision>" form; in a plain file it is the
	// bare object ID.
	CityObjects map[string]Object

	// Vertices is the shared coordinate table referenced by geometry
	// boundaries. Entries are x/y/z triples (quantized when the envelope
	// carries a transform).
	Vertices [][]float64

	// Versioning is nil for plain (unversioned) documents.
	Versioning *Versioning

	// envelope holds every top-level member other than CityObjects, vertices
	// and versioning, byte-for-byte as it appeared in the source.
	envelope map[string]json.RawMessage
}

// Versioning is the "versioning" member of a versioned CityJSON file.
type Versioning struct {
	Versions map[string]VersionRecord `json:"versions"`
	Branches map[string]string        `json:"branches"`
	Tags     map[string]string        `json:"tags,omitempty"`

	// DuplicateNames lists version names that appeared more than once in the
	// source container. encoding/json keeps only the last duplicate key, so
	// Parse records collisions here for the graph to reject.
	DuplicateNames []string `json:"-"`
}

// VersionRecord is one entry of the "versions" map as stored on disk.
// Author, message and date are display-only metadata. Objects maps object ID
// to the revision tag visible at this version; it is a full index, not a diff.
type VersionRecord struct {
	Author  string            `json:"author"`
	Message string            `json:"message"`
	Date    string            `json:"date"`
	Parents []string          `json:"parents,omitempty"`
	Objects map[string]string `json:"objects"`
}

// Parse decodes a CityJSON document from raw bytes.
func Parse(data []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("not a valid JSON file: %w", err)
	}

	doc := &Document{
		CityObjects: map[string]Object{},
		envelope:    map[string]json.RawMessage{},
	}

	for key, raw := range top {
		switch key {
		case "CityObjects":
			if err := json.Unmarshal(raw, &doc.CityObjects); err != nil {
				return nil, fmt.Errorf("decode CityObjects: %w", err)
			}
		case "vertices":
			if err := json.Unmarshal(raw, &doc.Vertices); err != nil {
				return nil, fmt.Errorf("decode vertices: %w", err)
			}
		case "versioning":
			doc.Versioning = &Versioning{}
			if err := json.Unmarshal(raw, doc.Versioning); err != nil {
				return nil, fmt.Errorf("decode versioning: %w", err)
			}
			doc.Versioning.DuplicateNames = versionNameCollisions(raw)
		default:
			doc.envelope[key] = raw
		}
	}

	return doc, nil
}

// ParseFile reads and decodes a CityJSON document from disk.
func ParseFile(path string) (*Document, error) {
	// #nosec G304 - controlled path from CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// versionNameCollisions scans the raw versioning member for keys repeated
// inside its "versions" object. The raw bytes have already unmarshalled
// cleanly when this runs, so token errors cannot occur.
func versionNameCollisions(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		if key, _ := keyTok.(string); key == "versions" {
			return duplicateKeys(dec)
		}
		if err := skipValue(dec); err != nil {
			return nil
		}
	}
	return nil
}

func duplicateKeys(dec *json.Decoder) []string {
	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		return nil
	}
	seen := map[string]bool{}
	var dups []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, _ := keyTok.(string)
		if seen[key] {
			dups = append(dups, key)
		}
		seen[key] = true
		if err := skipValue(dec); err != nil {
			return nil
		}
	}
	return dups
}

// skipValue consumes one JSON value, tracking delimiter depth for objects
// and arrays.
func skipValue(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := t.(json.Delim); ok && (d == '{' || d == '[') {
		depth := 1
		for depth > 0 {
			t, err := dec.Token()
			if err != nil {
				return err
			}
			if d, ok := t.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}

// IsVersioned reports whether the document carries a versioning section.
func (d *Document) IsVersioned() bool {
	return d.Versioning != nil
}

// EmptyCopy returns a new document sharing this document's envelope but with
// no city objects, no vertices and no versioning section. The envelope raw
// messages are immutable once parsed, so sharing them is safe.
func (d *Document) EmptyCopy() *Document {
	env := make(map[string]json.RawMessage, len(d.envelope))
	for k, v := range d.envelope {
		env[k] = v
	}
	return &Document{
		CityObjects: map[string]Object{},
		envelope:    env,
	}
}

// MarshalJSON writes the document back in container form. Envelope members
// are emitted verbatim; the versioning section is emitted only if present.
func (d *Document) MarshalJSON() ([]byte, error) {
	top := make(map[string]json.RawMessage, len(d.envelope)+3)
	for k, v := range d.envelope {
		top[k] = v
	}

	objects, err := json.Marshal(d.CityObjects)
	if err != nil {
		return nil, fmt.Errorf("encode CityObjects: %w", err)
	}
	top["CityObjects"] = objects

	vertices := d.Vertices
	if vertices == nil {
		vertices = [][]float64{}
	}
	verts, err := json.Marshal(vertices)
	if err != nil {
		return nil, fmt.Errorf("encode vertices: %w", err)
	}
	top["vertices"] = verts

	if d.Versioning != nil {
		versioning, err := json.Marshal(d.Versioning)
		if err != nil {
			return nil, fmt.Errorf("encode versioning: %w", err)
		}
		top["versioning"] = versioning
	}

	return json.Marshal(top)
}

// WriteFile serializes the document and writes it to path in one shot. The
// file is only created once the whole document has been encoded, so a failed
// encode never leaves a partial file behind.
func (d *Document) WriteFile(path string) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
