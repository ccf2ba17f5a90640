package codegen

import (
	"os"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/weldrs/weld/welderrs"
)

// ShimEmitter reads the handwritten TypeScript shim at path and transpiles
// it to runnable JavaScript. It performs no type checking — esbuild never
// type-checks — so a shim that imports a nonexistent export still
// transpiles; only syntax errors are caught here.
func ShimEmitter(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &welderrs.MissingShim{Path: path}
		}
		return "", &welderrs.IOError{Path: path, Err: err}
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:     api.LoaderTS,
		Target:     api.ESNext,
		Format:     api.FormatESModule,
		Sourcefile: path,
	})
	if len(result.Errors) > 0 {
		msgs := api.FormatMessages(result.Errors, api.FormatMessagesOptions{
			Kind:          api.ErrorMessage,
			TerminalWidth: 100,
		})
		message := ""
		if len(msgs) > 0 {
			message = msgs[0]
		}
		return "", &welderrs.TranspileError{Path: path, Message: message}
	}

	return string(result.Code), nil
}
