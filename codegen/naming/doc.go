// Package naming contains the name-mapping layer shared by Weld's
// registration functions and emitters.
//
// The functions in this package centralize identifier sanitization and
// snake_case/camelCase/PascalCase conversion so generated output is
// consistent across every emitter.
package naming
