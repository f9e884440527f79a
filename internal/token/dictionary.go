package token

// Dictionary holds every loaded token in load order with a path index.
// When two sources define the same path, Lookup returns the later one.
type Dictionary struct {
	tokens []*Token
	byPath map[string]*Token
}

// NewDictionary creates a dictionary from tokens in load order.
func NewDictionary(tokens ...*Token) *Dictionary {
	d := &Dictionary{byPath: make(map[string]*Token, len(tokens))}
	for _, t := range tokens {
		d.Add(t)
	}
	return d
}

// Add appends a token, shadowing any earlier token at the same path.
func (d *Dictionary) Add(t *Token) {
	d.tokens = append(d.tokens, t)
	d.byPath[t.Path.String()] = t
}

// Lookup returns the effective token at the dotted path.
func (d *Dictionary) Lookup(dotted string) (*Token, bool) {
	t, ok := d.byPath[dotted]
	return t, ok
}

// All returns every token in load order, including shadowed ones.
func (d *Dictionary) All() []*Token {
	return d.tokens
}

// Effective returns only the tokens Lookup would return, in load order.
func (d *Dictionary) Effective() []*Token {
	out := make([]*Token, 0, len(d.byPath))
	for _, t := range d.tokens {
		if d.byPath[t.Path.String()] == t {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of tokens, including shadowed ones.
func (d *Dictionary) Len() int {
	return len(d.tokens)
}

// Clone deep-copies every token so a platform build can mutate freely.
func (d *Dictionary) Clone() *Dictionary {
	c := &Dictionary{
		tokens: make([]*Token, 0, len(d.tokens)),
		byPath: make(map[string]*Token, len(d.byPath)),
	}
	for _, t := range d.tokens {
		ct := t.Clone()
		c.tokens = append(c.tokens, ct)
		if d.byPath[t.Path.String()] == t {
			c.byPath[ct.Path.String()] = ct
		}
	}
	return c
}

// Grouped splits tokens by source for the themed formats.
type Grouped struct {
	Base []*Token
	// Themes maps a theme name to its tokens in load order.
	Themes map[string][]*Token
	// ThemeNames lists theme names in first-seen order.
	ThemeNames []string
}

// GroupBySource splits tokens into base tokens and per-theme tokens.
func GroupBySource(tokens []*Token) Grouped {
	g := Grouped{Themes: make(map[string][]*Token)}
	for _, t := range tokens {
		if t.Source == SourceBase {
			g.Base = append(g.Base, t)
			continue
		}
		if _, seen := g.Themes[t.Theme]; !seen {
			g.ThemeNames = append(g.ThemeNames, t.Theme)
		}
		g.Themes[t.Theme] = append(g.Themes[t.Theme], t)
	}
	return g
}
