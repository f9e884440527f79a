package transform

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// segmentGen draws from a vocabulary that makes elevation paths likely.
func segmentGen() gopter.Gen {
	return gen.OneConstOf("elevation", "shadow", "card", "0", "1", "2", "5", "blur", "color", "bg", "x-y", "")
}

func pathGen() gopter.Gen {
	return gen.SliceOf(segmentGen(), reflect.TypeOf("")).Map(func(s []string) token.Path {
		return token.Path(s)
	})
}

// plainPathGen never yields "elevation", so no path is discarded.
func plainPathGen() gopter.Gen {
	seg := gen.OneConstOf("shadow", "card", "0", "1", "2", "5", "blur", "color", "bg", "x-y", "")
	return gen.SliceOf(seg, reflect.TypeOf("")).Map(func(s []string) token.Path {
		return token.Path(s)
	})
}

func hasElevation(p token.Path) bool {
	for _, s := range p {
		if s == "elevation" {
			return true
		}
	}
	return false
}

func TestAliasLayerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("aliasing is idempotent", prop.ForAll(
		func(p token.Path) bool {
			once := AliasLayer(p)
			return AliasLayer(once).Equal(once)
		},
		pathGen(),
	))

	properties.Property("paths without elevation are returned unchanged", prop.ForAll(
		func(p token.Path) bool {
			return AliasLayer(p).Equal(p)
		},
		plainPathGen(),
	))

	properties.Property("generated plain paths have no elevation", prop.ForAll(
		func(p token.Path) bool {
			return !hasElevation(p)
		},
		plainPathGen(),
	))

	properties.Property("input is never mutated", prop.ForAll(
		func(p token.Path) bool {
			before := p.Clone()
			_ = AliasLayer(p)
			return p.Equal(before)
		},
		pathGen(),
	))

	properties.Property("length is preserved", prop.ForAll(
		func(p token.Path) bool {
			return len(AliasLayer(p)) == len(p)
		},
		pathGen(),
	))

	properties.TestingRun(t)
}

func TestBuildNameProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("kebab names are lowercase alphanumerics joined by hyphens", prop.ForAll(
		func(segs []string) bool {
			name, err := BuildName(token.Path(segs), Kebab)
			if err != nil {
				return true
			}
			for _, w := range strings.Split(name, "-") {
				if w == "" || w != strings.ToLower(w) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("camel and kebab carry the same letters", prop.ForAll(
		func(segs []string) bool {
			kebab, kerr := BuildName(token.Path(segs), Kebab)
			camel, cerr := BuildName(token.Path(segs), Camel)
			if (kerr == nil) != (cerr == nil) {
				return false
			}
			return strings.ReplaceAll(kebab, "-", "") == strings.ToLower(camel)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
