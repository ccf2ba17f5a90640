// Package fs is a worked example of the filesystem extension a native
// crate would register through weld.Op/Record/Tag. It has no real native
// implementation behind it — there is no Rust crate here — but the
// declarations below are exactly the shape a crate's op functions would
// carry, so Build (see build.go) exercises the full generation pipeline
// end to end.
package fs

import "github.com/weldrs/weld/weld"

func init() {
	weld.Record(weld.RecordDesc{
		Name: "FileStat",
		Doc:  "Metadata for a single filesystem entry.",
		Fields: []weld.FieldDesc{
			{Name: "is_file", Type: "bool"},
			{Name: "is_directory", Type: "bool"},
			{Name: "size", Type: "u64"},
			{Name: "modified", Type: "Option<u64>", Doc: "Milliseconds since the Unix epoch, absent on platforms without mtime support."},
		},
	})

	weld.Tag(weld.TagDesc{
		Name: "WatchEventKind",
		Doc:  "The kind of change a filesystem watch observed.",
		Variants: []weld.VariantDesc{
			{Name: "Created"},
			{Name: "Modified"},
			{Name: "Removed"},
		},
	})

	weld.Tag(weld.TagDesc{
		Name: "WatchEvent",
		Doc:  "One filesystem watch notification, carrying the path it happened to.",
		Variants: []weld.VariantDesc{
			{Name: "Created", Payload: "String"},
			{Name: "Modified", Payload: "String"},
			{Name: "Removed", Payload: "String"},
		},
	})

	weld.Op(weld.OpDesc{
		Name:  "op_fs_stat",
		Async: true,
		Doc:   "Reads metadata for the file or directory at path.",
		Params: []weld.ParamDesc{
			{Name: "path", Type: "String"},
		},
		Returns: "Result<FileStat, String>",
	})

	weld.Op(weld.OpDesc{
		Name:  "op_fs_read_text",
		Async: true,
		Doc:   "Reads the file at path as UTF-8 text.",
		Params: []weld.ParamDesc{
			{Name: "path", Type: "String"},
			{Name: "encoding", Type: "Option<String>", Doc: "Defaults to utf-8 when omitted."},
		},
		Returns: "Result<String, String>",
	})

	weld.Op(weld.OpDesc{
		Name:  "op_fs_read_bytes",
		Async: true,
		Doc:   "Reads the file at path as raw bytes.",
		Params: []weld.ParamDesc{
			{Name: "path", Type: "String"},
		},
		Returns: "Result<Vec<u8>, String>",
	})

	weld.Op(weld.OpDesc{
		Name:  "op_fs_watch",
		Async: true,
		Doc:   "Subscribes to filesystem change notifications under path.",
		Params: []weld.ParamDesc{
			{Name: "state", Type: "OpState"},
			{Name: "path", Type: "String"},
		},
		Returns: "()",
	})
}
