package pool

import (
	"strings"
	"sync"
	"testing"
)

// TestStringBuilderPool tests the string builder pool
func TestStringBuilderPool(t *testing.T) {
	sb := GetStringBuilder()
	if sb == nil {
		t.Fatal("GetStringBuilder returned nil")
	}

	sb.WriteString("test")
	if sb.String() != "test" {
		t.Errorf("Expected 'test', got %q", sb.String())
	}
	PutStringBuilder(sb)

	// Get again and verify it's reset
	sb2 := GetStringBuilder()
	if sb2.Len() != 0 {
		t.Errorf("String builder should be reset, but has length %d", sb2.Len())
	}
	PutStringBuilder(sb2)
}

func TestStringBuilderPoolDropsLargeBuilders(t *testing.T) {
	sb := GetStringBuilder()
	sb.Grow(maxBuilderCap + 1)
	PutStringBuilder(sb)
	PutStringBuilder(nil)

	if got := GetStringBuilder(); got.Len() != 0 {
		t.Errorf("Expected empty builder, got length %d", got.Len())
	}
}

// TestStringBuilderPool_Concurrent tests concurrent access to string builder pool
func TestStringBuilderPool_Concurrent(t *testing.T) {
	const goroutines = 10
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				sb := GetStringBuilder()
				sb.WriteString("test")
				if sb.String() != "test" {
					t.Errorf("Goroutine %d iteration %d: unexpected content", id, j)
				}
				PutStringBuilder(sb)
			}
		}(i)
	}

	wg.Wait()
}

func TestLineSlicePool(t *testing.T) {
	lines := GetLineSlice()
	if lines == nil || *lines == nil {
		t.Fatal("GetLineSlice returned nil")
	}
	if cap(*lines) < lineSliceCap {
		t.Errorf("Expected capacity >= %d, got %d", lineSliceCap, cap(*lines))
	}

	*lines = append(*lines, "a", "b")
	PutLineSlice(lines)
	PutLineSlice(nil)

	again := GetLineSlice()
	if len(*again) != 0 {
		t.Errorf("Expected empty slice, got %v", *again)
	}
	PutLineSlice(again)
}

// BenchmarkStringBuilderPool benchmarks the string builder pool
func BenchmarkStringBuilderPool(b *testing.B) {
	b.Run("WithPool", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sb := GetStringBuilder()
			sb.WriteString("test string")
			_ = sb.String()
			PutStringBuilder(sb)
		}
	})

	b.Run("WithoutPool", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sb := &strings.Builder{}
			sb.WriteString("test string")
			_ = sb.String()
		}
	})
}

// BenchmarkStringBuilderPool_Parallel benchmarks concurrent pool usage
func BenchmarkStringBuilderPool_Parallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			sb := GetStringBuilder()
			sb.WriteString("test string for parallel benchmark")
			_ = sb.String()
			PutStringBuilder(sb)
		}
	})
}
