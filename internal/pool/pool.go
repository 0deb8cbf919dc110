// Package pool holds sync.Pool-backed buffers reused across frames.
package pool

import (
	"strings"
	"sync"
)

const (
	maxBuilderCap = 64 * 1024
	lineSliceCap  = 64
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

var lineSlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, lineSliceCap)
		return &s
	},
}

// GetStringBuilder returns an empty builder.
func GetStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// PutStringBuilder returns sb to the pool. Oversized builders are dropped so
// one huge frame does not pin its memory.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil || sb.Cap() > maxBuilderCap {
		return
	}
	stringBuilderPool.Put(sb)
}

// GetLineSlice returns an empty slice for splitting a frame into lines.
func GetLineSlice() *[]string {
	s := lineSlicePool.Get().(*[]string)
	*s = (*s)[:0]
	return s
}

// PutLineSlice clears s and returns it to the pool.
func PutLineSlice(s *[]string) {
	if s == nil {
		return
	}
	clear(*s)
	*s = (*s)[:0]
	lineSlicePool.Put(s)
}
