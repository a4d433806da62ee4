package tree

import (
	"fmt"
	"regexp"
)

// FilterOptions selects how a filter expression is interpreted.
type FilterOptions struct {
	// Regex treats the expression verbatim as a pattern that must match the
	// whole element. When false, the expression is a substring match: it is
	// wrapped as ".*expr.*" before compiling.
	Regex bool

	// Invert keeps the non-matching elements instead of the matching ones.
	Invert bool
}

// Filter derives a new tree holding only the elements matching expr. The
// receiver is untouched; the returned tree owns its own element list and
// filter log. Survivors keep their snapshot order. An invalid pattern fails
// the call without producing a tree.
func (t *Tree) Filter(expr string, opts FilterOptions) (*Tree, error) {
	kept, record, err := t.matchElements(expr, opts)
	if err != nil {
		return nil, err
	}

	derived := &Tree{
		root:     t.root,
		leading:  t.leading,
		rootName: t.rootName,
		kind:     t.kind,
		elements: kept,
		filters:  append(append(make([]string, 0, len(t.filters)+1), t.filters...), record),
		Name:     t.Name,
	}
	return derived, nil
}

// FilterInPlace replaces the receiver's elements with those matching expr
// and appends the expression to the filter log. The call is atomic: on an
// invalid pattern neither the elements nor the log change.
func (t *Tree) FilterInPlace(expr string, opts FilterOptions) error {
	kept, record, err := t.matchElements(expr, opts)
	if err != nil {
		return err
	}
	t.elements = kept
	t.filters = append(t.filters, record)
	return nil
}

// matchElements returns the surviving elements in snapshot order along with
// the human-auditable record for the filter log.
func (t *Tree) matchElements(expr string, opts FilterOptions) ([]string, string, error) {
	pattern := expr
	if !opts.Regex {
		pattern = ".*" + expr + ".*"
	}

	// Anchor both ends so the whole element must match.
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, "", fmt.Errorf("invalid filter expression %q: %w", expr, err)
	}

	kept := make([]string, 0, len(t.elements))
	for _, e := range t.elements {
		if re.MatchString(e) != opts.Invert {
			kept = append(kept, e)
		}
	}

	record := pattern
	if opts.Invert {
		record = "!><" + pattern
	}
	return kept, record, nil
}
