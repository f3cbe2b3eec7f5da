package frame

import (
	"errors"
	"fmt"
	"regexp"
)

// customFieldID matches one whole path segment holding a machine-generated
// custom field identifier. Matching is done per segment, never on the joined
// dotted string, so an identifier-looking substring inside a display name
// can not be rewritten by accident.
var customFieldID = regexp.MustCompile(`^customfield_[0-9]+$`)

// ErrUnknownCustomField reports an identifier with no entry in the fetched
// lookup. An unresolvable rename is a configuration error, not a skip.
var ErrUnknownCustomField = errors.New("custom field not in lookup")

// ResolveCustomFields rewrites every column path segment that is a custom
// field identifier to its display name, leaving all other segments
// untouched. Columns without an identifier segment pass through unchanged,
// so the operation is idempotent on already-resolved frames.
func ResolveCustomFields(f *Frame, lookup map[string]string) error {
	for _, col := range f.cols {
		changed := false
		resolved := make(Path, len(col.Path))
		for i, seg := range col.Path {
			if !customFieldID.MatchString(seg) {
				resolved[i] = seg
				continue
			}
			name, ok := lookup[seg]
			if !ok {
				return fmt.Errorf("column %s: %s: %w", col.Path, seg, ErrUnknownCustomField)
			}
			resolved[i] = name
			changed = true
		}
		if !changed {
			continue
		}
		delete(f.byKey, col.Path.key())
		col.Path = resolved
		f.byKey[col.Path.key()] = col
	}
	return nil
}
