// Package typesim reduces raw TypeScript type expressions into the
// simplified prop model used throughout the showcase: canonical type text,
// literal-union values, renderable kinds, and expanded structured fields.
package typesim

import "strings"

// Simplify reduces a raw type expression to its canonical form: strips
// `| null` and `| undefined` union members, deduplicates identical members,
// and leaves everything else intact. Simplify is idempotent.
func Simplify(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	members := SplitUnion(raw)
	if len(members) == 1 {
		return members[0]
	}

	seen := make(map[string]bool, len(members))
	kept := make([]string, 0, len(members))
	for _, m := range members {
		if m == "null" || m == "undefined" {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		kept = append(kept, m)
	}

	if len(kept) == 0 {
		// A union of only null/undefined collapses to undefined.
		return "undefined"
	}
	return strings.Join(kept, " | ")
}

// ExtractLiteralValues returns the members of a literal union in source
// order, unquoted. A union needs at least two literal members to count as a
// choosable enum; a single literal is a fixed constant, and unions mixing
// literals with type names yield nothing.
func ExtractLiteralValues(raw string) []string {
	members := SplitUnion(Simplify(raw))
	if len(members) < 2 {
		return nil
	}

	values := make([]string, 0, len(members))
	for _, m := range members {
		switch {
		case isQuoted(m):
			values = append(values, unquote(m))
		case !IsTypeNameToken(m):
			values = append(values, m)
		default:
			return nil
		}
	}

	if len(values) < 2 {
		return nil
	}
	return values
}

// SplitUnion splits a type expression on top-level `|`, respecting nesting
// inside quotes, angle brackets, parens, braces, and square brackets.
// Members come back trimmed, in source order.
func SplitUnion(raw string) []string {
	var members []string
	depth := 0
	var quote byte
	start := 0

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if quote != 0 {
			if c == quote && (i == 0 || raw[i-1] != '\\') {
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c
		case '<', '(', '{', '[':
			depth++
		case '>', ')', '}', ']':
			// `=>` arrows are not closing brackets.
			if c == '>' && i > 0 && raw[i-1] == '=' {
				continue
			}
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				members = append(members, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	members = append(members, strings.TrimSpace(raw[start:]))

	// Drop empty members produced by leading pipes (`| "a" | "b"`).
	out := members[:0]
	for _, m := range members {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') ||
		(s[0] == '`' && s[len(s)-1] == '`')
}

func unquote(s string) string {
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}
