//go:build ignore

// This file is a go:generate target, not part of the fs package build: a
// real crate invokes it from its own build.rs equivalent (a small Go
// program run via `go run`), which is why it is excluded from the package
// with the ignore tag above rather than living in a _test.go file.
package main

import (
	"context"
	"log"

	"github.com/weldrs/weld/build"

	_ "github.com/weldrs/weld/example/fs"
)

func main() {
	_, err := build.NewExtensionBuilder("fs").
		WithSpecifier("weld:fs").
		WithShim("example/fs/shim.ts").
		WithEntryPoint("./fs/index.js").
		WithModuleDoc("Filesystem access: stat, read, and watch.").
		WithOps(
			"op_fs_stat",
			"op_fs_read_text",
			"op_fs_read_bytes",
			"op_fs_watch",
		).
		WithOutDir("example/fs/gen").
		Build(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}
