package locale

import (
	"regexp"

	"x4tables/internal/textutil"

	"github.com/rs/zerolog/log"
)

// DefaultMaxDepth bounds the number of scan-and-substitute passes per
// resolution. Nested references are normally flattened by the recursive
// step in a single pass; the bound is a safety net.
const DefaultMaxDepth = 10

// MissingText substitutes for references that have no catalog entry.
const MissingText = "Unknown"

// tokenRE matches reference tokens like {20201,401} embedded in text.
var tokenRE = regexp.MustCompile(`\{(\d+),(\d+)\}`)

// Resolve expands every {page,t} token in text against the catalog,
// recursively, then strips parenthesized annotations and trims whitespace.
// Missing entries become "Unknown"; circular references are left as their
// literal token text. Each call owns its resolution path, so resolving the
// same key in unrelated contexts is always allowed.
func (c *Catalog) Resolve(text string) string {
	path := make([]string, 0, 4)
	return c.resolve(text, &path, c.maxDepth)
}

// resolve runs substitution passes over text until a pass changes nothing
// or maxDepth passes have run, then strips annotations. The path holds the
// chain of keys currently being expanded by enclosing calls.
func (c *Catalog) resolve(text string, path *[]string, maxDepth int) string {
	current := text
	depth := 0
	for ; depth < maxDepth; depth++ {
		next := tokenRE.ReplaceAllStringFunc(current, func(token string) string {
			return c.expand(token, path, maxDepth)
		})
		if next == current {
			break
		}
		current = next
	}
	if depth == maxDepth {
		log.Warn().Str("text", textutil.Truncate(text, 60)).Msg("Max depth reached while resolving placeholders")
	}

	return textutil.StripAnnotations(current)
}

// expand produces the replacement for a single token. A key already on the
// active path is a cycle: the token is kept literally and never recursed
// into again on this path.
func (c *Catalog) expand(token string, path *[]string, maxDepth int) string {
	m := tokenRE.FindStringSubmatch(token)
	key := Key(m[1], m[2])

	for _, k := range *path {
		if k == key {
			log.Warn().Str("key", key).Msg("Circular localization reference")
			return token
		}
	}

	value, ok := c.entries[key]
	if !ok {
		log.Warn().Str("key", key).Msg("Missing localization entry")
		return MissingText
	}

	*path = append(*path, key)
	resolved := c.resolve(value, path, maxDepth-1)
	*path = (*path)[:len(*path)-1]
	return resolved
}

// ResolveReference looks up a whole-string name reference such as
// "{20201,401}" and resolves its payload. An unparseable reference yields
// "Unknown" and false.
func (c *Catalog) ResolveReference(ref string) (string, bool) {
	key, ok := ParseReference(ref)
	if !ok {
		return MissingText, false
	}
	raw, ok := c.entries[key]
	if !ok {
		log.Warn().Str("key", key).Msg("Missing localization entry")
		return MissingText, true
	}
	return c.Resolve(raw), true
}
