// Package resolve substitutes token references ("{color.base.blue}")
// with the values they point at.
package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/dag"
	"github.com/1101hirokin/tzie-tokens/internal/token"
)

var (
	// ErrUnknownReference is returned when a reference names no token.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrCircularReference is returned when references form a cycle.
	ErrCircularReference = errors.New("circular reference")
)

var refPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// References returns the dotted paths referenced anywhere in v without
// duplicates. Object members are visited in key order.
func References(v any) []string {
	var refs []string
	seen := make(map[string]bool)
	walk(v, func(s string) {
		for _, m := range refPattern.FindAllStringSubmatch(s, -1) {
			ref := strings.TrimSpace(m[1])
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	})
	return refs
}

// WholeReference returns the referenced path if s is exactly one reference.
func WholeReference(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	m := refPattern.FindStringSubmatchIndex(s)
	if m == nil || m[0] != 0 || m[1] != len(s) {
		return "", false
	}
	return strings.TrimSpace(s[m[2]:m[3]]), true
}

func walk(v any, fn func(string)) {
	switch val := v.(type) {
	case string:
		fn(val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(val[k], fn)
		}
	case []any:
		for _, item := range val {
			walk(item, fn)
		}
	}
}

// Dictionary resolves every reference in d in place. Tokens are resolved
// in dependency order; each token's Original is left untouched and
// RefersTo is set when the whole value was a single reference.
func Dictionary(d *token.Dictionary) error {
	g := dag.NewGraph[*token.Token]()
	effective := d.Effective()
	for _, t := range effective {
		g.AddNode(t.Path.String(), t)
	}

	var errs []error
	for _, t := range effective {
		id := t.Path.String()
		for _, ref := range References(t.Value) {
			if _, ok := d.Lookup(ref); !ok {
				errs = append(errs, fmt.Errorf("%s: %w {%s}", id, ErrUnknownReference, ref))
				continue
			}
			if err := g.AddEdge(ref, id); err != nil {
				return err
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	sorted, err := g.Sort()
	if err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			return fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(cycleErr.Path, " -> "))
		}
		return err
	}

	for _, n := range sorted {
		t := n.Data
		if ref, ok := WholeReference(t.Value); ok {
			t.RefersTo = token.ParsePath(ref)
			if t.Type == "" {
				target, _ := d.Lookup(ref)
				t.Type = target.Type
			}
		}
		t.Value = substitute(t.Value, d)
	}

	// Shadowed tokens are still emitted by the themed formats, so they
	// resolve against the effective dictionary too. Nothing depends on
	// them, which makes a single pass enough.
	for _, t := range d.All() {
		if cur, _ := d.Lookup(t.Path.String()); cur == t {
			continue
		}
		unknown := false
		for _, ref := range References(t.Value) {
			if _, ok := d.Lookup(ref); !ok {
				errs = append(errs, fmt.Errorf("%s: %w {%s}", t.Path, ErrUnknownReference, ref))
				unknown = true
			}
		}
		if unknown {
			continue
		}
		if ref, ok := WholeReference(t.Value); ok {
			t.RefersTo = token.ParsePath(ref)
		}
		t.Value = substitute(t.Value, d)
	}
	return errors.Join(errs...)
}

// substitute replaces references in v using already resolved tokens.
func substitute(v any, d *token.Dictionary) any {
	switch val := v.(type) {
	case string:
		if ref, ok := WholeReference(val); ok {
			target, _ := d.Lookup(ref)
			return token.CloneValue(target.Value)
		}
		return refPattern.ReplaceAllStringFunc(val, func(m string) string {
			ref := strings.TrimSpace(m[1 : len(m)-1])
			target, _ := d.Lookup(ref)
			return Stringify(target.Value)
		})
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = substitute(item, d)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = substitute(item, d)
		}
		return out
	default:
		return v
	}
}

// Stringify renders a resolved value for string interpolation.
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatNumber(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
