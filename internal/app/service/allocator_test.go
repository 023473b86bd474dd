package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// zeroReader yields zero bytes forever, so every generated alias is the same.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestAllocator_Generate(t *testing.T) {
	a := NewAllocator(nil, zap.NewNop())

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := a.Generate()
		require.NoError(t, err)
		assert.Len(t, code, AliasLength)
		for _, c := range code {
			assert.Contains(t, alphabet, string(c))
		}
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 195)
}

func TestAllocator_GenerateSkipsBiasedBytes(t *testing.T) {
	// 255 and 250 fall in the rejected tail; 1 and 61 map to '1' and 'Z'
	src := bytes.NewReader([]byte{255, 1, 250, 61, 1, 61, 1, 61, 1, 61, 1, 61, 1, 61})
	a := NewAllocator(nil, zap.NewNop(), WithEntropy(src))

	code, err := a.Generate()
	require.NoError(t, err)
	assert.Equal(t, "1Z1Z1Z1", code)
}

func TestAllocator_ClaimExhausted(t *testing.T) {
	ctx := context.Background()
	store, _ := storage.CreateMemoryStorage()

	core, logs := observer.New(zap.ErrorLevel)
	a := NewAllocator(store, zap.New(core), WithEntropy(zeroReader{}))

	first, err := a.Claim(ctx, storage.Link{ID: "l1"}, "")
	require.NoError(t, err)
	assert.Equal(t, "0000000", first.ShortCode)

	_, err = a.Claim(ctx, storage.Link{ID: "l2"}, "")
	assert.ErrorIs(t, err, ErrAllocationExhausted)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "alias space exhausted", logs.All()[0].Message)
}
