// Package ir defines the intermediate representation shared by every Weld
// component. It is the sole contract between the producers (rustsyn, weld)
// and the consumers (inventory, codegen): every entity here is built by a
// registration thunk when the inventory is evaluated, lives for the
// duration of one generator invocation, and is never mutated after
// construction.
package ir
