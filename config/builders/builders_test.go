package builders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/postkit/config"
	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/filter"
	"github.com/rushteam/postkit/model"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/rank"
	"github.com/rushteam/postkit/recall"
	"github.com/rushteam/postkit/rerank"
)

func TestRegisteredTypes(t *testing.T) {
	types := config.SupportedTypes()
	for _, typ := range []string{
		"recall.pool", "recall.recent", "recall.popular", "recall.tagged", "recall.fanout",
		"filter", "rank.similarity", "rerank.topn", "rerank.backfill", "rerank.diversity",
	} {
		assert.Contains(t, types, typ)
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.pool"}, {Type: "rank.similarity"}}
	assert.NoError(t, config.ValidatePipelineConfig(cfg))

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, pipeline.NodeConfig{Type: "rank.lr"})
	assert.Error(t, config.ValidatePipelineConfig(cfg))

	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{}}
	assert.Error(t, config.ValidatePipelineConfig(cfg))
	assert.NoError(t, config.ValidatePipelineConfig(nil))
}

func TestBuildFanoutNode(t *testing.T) {
	node, err := BuildFanoutNode(map[string]any{
		"sources": []any{
			map[string]any{"type": "pool"},
			map[string]any{"type": "recent", "top_k": 5},
			map[string]any{"type": "tagged", "max_tags": 2},
		},
		"dedup":          false,
		"timeout_ms":     250,
		"max_concurrent": 2.0,
	})
	require.NoError(t, err)

	fanout, ok := node.(*recall.Fanout)
	require.True(t, ok)
	require.Len(t, fanout.Sources, 3)
	assert.Equal(t, 5, fanout.Sources[1].(*recall.Recent).TopK)
	assert.False(t, fanout.Dedup)
	assert.Equal(t, 250*time.Millisecond, fanout.Timeout)
	assert.Equal(t, 2, fanout.MaxConcurrent)

	_, err = BuildFanoutNode(map[string]any{})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = BuildFanoutNode(map[string]any{"sources": []any{map[string]any{"type": "ann"}}})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]any{
		"filters": []any{
			map[string]any{"type": "target"},
			map[string]any{"type": "blacklist", "ids": []any{"a", 42}},
			map[string]any{"type": "expr", "expr": "item.published"},
		},
	})
	require.NoError(t, err)
	fn := node.(*filter.FilterNode)
	require.Len(t, fn.Filters, 4)
	bl := fn.Filters[2].(*filter.BlacklistFilter)
	assert.Contains(t, bl.IDs, "a")
	assert.Contains(t, bl.IDs, "42")

	node, err = BuildFilterNode(nil)
	require.NoError(t, err)
	assert.Len(t, node.(*filter.FilterNode).Filters, 2)

	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "expr", "expr": "item.("}}})
	assert.ErrorIs(t, err, core.ErrInvalidExpr)

	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "exposed"}}})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestBuildSimilarityNode(t *testing.T) {
	node, err := BuildSimilarityNode(map[string]any{
		"max_tags": 5,
		"weights":  map[string]any{"tag": 1, "title": 0.5, "content": 0},
		"model": map[string]any{
			"bias":    0.1,
			"weights": map[string]any{"title_score": 0.5, "content_score": 0.2},
		},
	})
	require.NoError(t, err)
	sn := node.(*rank.SimilarityNode)
	assert.Equal(t, 1.0, sn.Scorer.Weights.Tag)
	assert.Equal(t, 0.5, sn.Scorer.Weights.Title)
	assert.Equal(t, 5, sn.Scorer.Tagger.MaxTags)

	lm := sn.Model.(*model.LinearModel)
	assert.Equal(t, 0.1, lm.Bias)
	// 特征按名称排序
	assert.Equal(t, []model.FeatureWeight{
		{Feature: "content_score", Weight: 0.2},
		{Feature: "title_score", Weight: 0.5},
	}, lm.Weights)

	_, err = BuildSimilarityNode(map[string]any{"model": map[string]any{"bias": 1}})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	node, err = BuildSimilarityNode(nil)
	require.NoError(t, err)
	assert.Nil(t, node.(*rank.SimilarityNode).Model)
}

func TestBuildRerankNodes(t *testing.T) {
	node, err := BuildTopNNode(map[string]any{"n": 4})
	require.NoError(t, err)
	assert.Equal(t, 4, node.(*rerank.TopNNode).N)

	node, err = BuildBackfillNode(map[string]any{"source": "popular", "n": 6})
	require.NoError(t, err)
	bf := node.(*rerank.BackfillNode)
	assert.Equal(t, 6, bf.N)
	assert.IsType(t, &recall.Popular{}, bf.Source)

	node, err = BuildBackfillNode(nil)
	require.NoError(t, err)
	assert.IsType(t, &recall.Recent{}, node.(*rerank.BackfillNode).Source)

	_, err = BuildBackfillNode(map[string]any{"source": "random"})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	node, err = BuildDiversityNode(map[string]any{"label_key": "recall_source"})
	require.NoError(t, err)
	assert.Equal(t, "recall_source", node.(*rerank.Diversity).LabelKey)
}

func TestDefaultFactoryBuildsYAMLPipeline(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: related
  nodes:
    - type: recall.fanout
      config:
        sources:
          - type: pool
          - type: popular
    - type: filter
    - type: rank.similarity
    - type: rerank.diversity
    - type: rerank.topn
      config:
        n: 3
    - type: rerank.backfill
`))
	require.NoError(t, err)
	require.NoError(t, config.ValidatePipelineConfig(cfg))

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	require.NoError(t, err)
	require.Len(t, p.Nodes, 6)
	assert.Equal(t, pipeline.KindRecall, p.Nodes[0].Kind())
	assert.Equal(t, "rerank.backfill", p.Nodes[5].Name())
}
