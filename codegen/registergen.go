package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/weldrs/weld/inventory"
)

// RegisterEmitter produces the native source fragment a consuming crate's
// build script includes via include!(): a single invocation of the host
// runtime's extension-registration macro, carrying the module name, its
// specifier, the entry point path, the sorted list of op source names, and
// the transpiled shim embedded as a string literal.
//
// shimJS is the already-transpiled output of ShimEmitter; RegisterEmitter
// does not transpile on its own so callers can share one transpile across
// both this and any other consumer of the shim text.
func RegisterEmitter(view *inventory.ModuleView, specifier, entryPoint, shimJS string) (string, error) {
	opNames := make([]string, 0, len(view.Ops))
	for _, o := range view.Ops {
		opNames = append(opNames, o.SourceName)
	}
	sort.Strings(opNames)

	quoted := make([]string, len(opNames))
	for i, n := range opNames {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "weld_runtime::extension!(\n")
	fmt.Fprintf(&b, "    name = %q,\n", view.Name)
	fmt.Fprintf(&b, "    specifier = %q,\n", specifier)
	fmt.Fprintf(&b, "    entry_point = %q,\n", entryPoint)
	fmt.Fprintf(&b, "    ops = [%s],\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&b, "    shim = %s,\n", escapeJSStringLiteral(shimJS))
	b.WriteString(");\n")

	return FormatDecl(b.String()), nil
}

// escapeJSStringLiteral renders s as a double-quoted Rust string literal
// with backslash, double-quote, and newline escaped, matching the embedded
// shim's expected encoding in the registration fragment.
func escapeJSStringLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
