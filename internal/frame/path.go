package frame

import "strings"

// Path identifies a column as an ordered list of field segments
// (e.g. ["fields", "customfield_10101", "completedCycles"]). Paths stay
// structured inside the pipeline; the dotted string form exists only at
// the configuration and table boundaries.
type Path []string

// ParsePath splits a dotted column reference into segments.
func ParsePath(dotted string) Path {
	if dotted == "" {
		return nil
	}
	return Path(strings.Split(dotted, "."))
}

// String serializes the path to its dotted boundary form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Child returns a new path extended by the given segments.
func (p Path) Child(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	out = append(out, segments...)
	return out
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// key is the internal column-map key. Segments are joined with an
// unprintable separator so a segment containing a literal dot cannot
// collide with a nested path.
func (p Path) key() string {
	return strings.Join(p, "\x1f")
}
