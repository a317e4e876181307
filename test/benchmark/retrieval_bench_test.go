package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/coverwise/claimlens/internal/embedding"
	"github.com/coverwise/claimlens/internal/vector"
)

func BenchmarkMemoryIndexSearch(b *testing.B) {
	idx, _ := vector.NewMemoryIndex(384)
	ctx := context.Background()
	vecs := make([][]float32, 1000)
	ids := make([]string, 1000)
	for i := 0; i < 1000; i++ {
		vecs[i] = make([]float32, 384)
		vecs[i][0] = float32(i) / 1000
		ids[i] = fmt.Sprintf("%d", i)
	}
	_ = idx.Add(ctx, ids, vecs)
	query := make([]float32, 384)
	query[0] = 1.0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = idx.Search(ctx, query, 5)
	}
}

func BenchmarkMockEmbedder_Embed(b *testing.B) {
	e := embedding.NewMockEmbedder(384)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Embed(ctx, "46-year-old male, knee surgery in Pune, 3-month-old insurance policy")
	}
}

func BenchmarkSimpleTokenizer(b *testing.B) {
	tok := &embedding.SimpleTokenizer{}
	text := "Orthopedic surgery, including knee surgery and hip replacement, is covered at 80% of the sum insured."
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = tok.Tokenize(text, 256)
	}
}
