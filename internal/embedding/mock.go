package embedding

import (
	"context"
	"hash/fnv"
)

// MockClient produces deterministic pseudo-embeddings from a text hash,
// good enough for tests and offline runs: identical text maps to an
// identical vector.
type MockClient struct {
	Dim int
}

func NewMockClient() *MockClient {
	return &MockClient{Dim: 16}
}

func (c *MockClient) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, c.Dim)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed>>33))/float32(1<<31) - 0.5
	}
	return vec, nil
}
