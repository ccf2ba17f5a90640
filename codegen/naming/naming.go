package naming

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// SanitizeToken converts an arbitrary string into a filesystem-safe token,
// suitable for deterministic directory/file fragments derived from user
// input (extension names, module specifiers, etc).
//
// The returned token:
//   - is lower snake_case
//   - contains only [a-z0-9_]
//   - never starts/ends with '_' and never contains repeated "__"
//
// When the sanitized result is empty, SanitizeToken returns fallback.
func SanitizeToken(name, fallback string) string {
	s := strings.ToLower(strcase.ToSnake(name))
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	if s == "" {
		return fallback
	}
	return s
}

// Identifier builds a stable dotted identifier by sanitizing parts and
// joining them with '.'. No emitter in this module calls it.
func Identifier(parts ...string) string {
	sanitized := make([]string, 0, len(parts))
	for _, part := range parts {
		token := SanitizeToken(part, "segment")
		if token != "" {
			sanitized = append(sanitized, token)
		}
	}
	if len(sanitized) == 0 {
		return "id"
	}
	return strings.Join(sanitized, ".")
}

// HumanizeTitle converts a slug-like name (snake_case, kebab-case, dotted)
// into a conservative Title Case string. DeclEmitter does not call it: the
// banner is the fixed Banner constant, and an empty module doc emits no
// doc block.
func HumanizeTitle(s string) string {
	if s == "" {
		return s
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 && i+1 < len(s) {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	parts := strings.Fields(s)
	for i := range parts {
		if len(parts[i]) == 0 {
			continue
		}
		r := []rune(parts[i])
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// ToCamel converts a snake_case source identifier into the camelCase
// surface identifier used for parameter, field, and op names.
func ToCamel(s string) string {
	return strcase.ToLowerCamel(s)
}

// ToPascal converts a snake_case (or already Pascal) source identifier into
// the PascalCase surface identifier used for record and tag type names.
func ToPascal(s string) string {
	return strcase.ToCamel(s)
}

// StripOpPrefix strips a single leading "op_" prefix, and — when module is
// non-empty — a further "<module>_" segment, from a source op name.
func StripOpPrefix(sourceName, module string) string {
	s := strings.TrimPrefix(sourceName, "op_")
	if module != "" {
		s = strings.TrimPrefix(s, module+"_")
	}
	return s
}

// OpSurfaceName computes an op's deterministic surface name: camelCase of
// the source name with any single leading op_<module>_ prefix stripped.
func OpSurfaceName(sourceName, module string) string {
	return ToCamel(StripOpPrefix(sourceName, module))
}

// InferModule extracts the module segment from an "op_<module>_<rest>"
// source name, returning "" when the name has no such prefix. A module is
// inferred this way absent an explicit override.
func InferModule(sourceName string) string {
	const prefix = "op_"
	if !strings.HasPrefix(sourceName, prefix) {
		return ""
	}
	rest := sourceName[len(prefix):]
	i := strings.IndexByte(rest, '_')
	if i <= 0 {
		return ""
	}
	return rest[:i]
}
