package codegen

import "strings"

// FormatDecl applies the line-normalization rules every emitted file must
// follow: UTF-8, LF line endings, exactly one trailing newline. Split out
// as its own pass (rather than folded into DeclEmitter) so byte-stability
// and idempotence are testable independent of emitter internals.
func FormatDecl(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	return s + "\n"
}
