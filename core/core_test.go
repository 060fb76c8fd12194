package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/postkit/pkg/utils"
)

func TestResolveTarget(t *testing.T) {
	rctx := &RecommendContext{
		TargetID: "b",
		Pool:     []Post{{ID: "a"}, {ID: "b", Title: "B"}},
	}
	require.True(t, rctx.ResolveTarget())
	assert.Equal(t, "B", rctx.Target.Title)
	assert.Same(t, &rctx.Pool[1], rctx.Target)

	rctx.TargetID = "missing"
	assert.False(t, rctx.ResolveTarget())
	assert.Nil(t, rctx.Target)

	var nilCtx *RecommendContext
	assert.False(t, nilCtx.ResolveTarget())
}

func TestItemLabels(t *testing.T) {
	it := NewItem(&Post{ID: "a", Published: true})
	assert.Equal(t, "a", it.ID)
	assert.True(t, it.Published())

	it.PutLabel("recall_source", utils.Label{Value: "pool", Source: "recall"})
	it.PutLabel("recall_source", utils.Label{Value: "recent", Source: "recall"})
	assert.Equal(t, "pool|recent", it.Labels["recall_source"].Value)

	var empty *Item
	assert.False(t, empty.Published())
	assert.Equal(t, []Post{{ID: "a", Published: true}}, ItemsToPosts([]*Item{it, nil, {ID: "x"}}))
}

func TestDomainError(t *testing.T) {
	err := fmt.Errorf("load: %w", ErrStoreNotFound)
	assert.True(t, IsStoreNotFound(err))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalidInput(err))

	wrapped := fmt.Errorf("%w: bad weights", ErrInvalidConfig)
	assert.True(t, errors.Is(wrapped, ErrInvalidConfig))
	assert.True(t, IsInvalidInput(wrapped))
	assert.Equal(t, ModuleConfig, GetDomainError(wrapped).Module)

	assert.Nil(t, GetDomainError(errors.New("plain")))
}

func TestDefaultRankConfig(t *testing.T) {
	cfg := &DefaultRankConfig{}
	assert.Equal(t, 3, cfg.DefaultLimit())
	assert.Equal(t, 3, cfg.DefaultMaxTags())
	tag, title, content := cfg.DefaultWeights()
	assert.InDelta(t, 1.0, tag+title+content, 1e-9)
	assert.Equal(t, 0.4, tag)
}
