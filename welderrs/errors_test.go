package welderrs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weldrs/weld/ir"
)

func TestErrorMessagesIncludeSpan(t *testing.T) {
	span := ir.Span{File: "ext.rs", Line: 12, Column: 4}

	err := &UnsupportedType{Span: span, Token: "fn(u32)"}
	assert.Contains(t, err.Error(), "ext.rs:12:4")
	assert.Contains(t, err.Error(), "fn(u32)")

	ref := &UnresolvedReference{Span: span, Name: "FileStat"}
	assert.Contains(t, ref.Error(), "FileStat")
}

func TestSpanStringWithoutFile(t *testing.T) {
	err := &UnrepresentableVariant{Tag: "Kind", Variant: "Weird"}
	assert.Contains(t, err.Error(), "<generated>")
}

func TestIOErrorUnwraps(t *testing.T) {
	inner := errors.New("disk full")
	err := &IOError{Path: "out.d.ts", Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestInventoryMismatchMessage(t *testing.T) {
	err := &InventoryMismatch{Module: "fs", Missing: []string{"op_fs_read"}, Extra: []string{"op_fs_write"}}
	msg := err.Error()
	assert.Contains(t, msg, "fs")
	assert.Contains(t, msg, "op_fs_read")
	assert.Contains(t, msg, "op_fs_write")
}
