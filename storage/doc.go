// Package storage provides fixed-capacity homogeneous allocators with O(1)
// allocate and deallocate.
//
// Every slot belongs to exactly one of two circular doubly-linked lists, free
// or used. The links live in a flat array beside the slots and are indices, not
// pointers; their integer width is the smallest unsigned type able to address
// the requested capacity, so a 900-slot pool pays 4 bytes of links per slot
// rather than 16.
//
// Storage hands out raw byte slots addressed by index. Pool[T] layers a typed
// value array on the same lists and hands out *T.
//
// Neither type is safe for concurrent use.
//
// Deallocating a slot that is not currently in use is a precondition violation.
// Builds tagged pooldebug panic with ErrInvalidOwnership; release builds do not
// check and the lists are corrupted.
package storage
