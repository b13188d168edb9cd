package testutil

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// NewCheckedAllocator returns an allocator that fails the test at cleanup
// if any buffer it handed out is still live.
func NewCheckedAllocator(t testing.TB) *memory.CheckedAllocator {
	t.Helper()
	alloc := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { alloc.AssertSize(t, 0) })
	return alloc
}
