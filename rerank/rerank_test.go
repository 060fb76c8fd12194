package rerank

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pkg/utils"
	"github.com/rushteam/postkit/recall"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func testPool() []core.Post {
	return []core.Post{
		{ID: "t", Published: true, CreatedAt: day},
		{ID: "a", Published: true, Views: 3, CreatedAt: day.Add(24 * time.Hour)},
		{ID: "b", Published: true, Views: 9, CreatedAt: day.Add(48 * time.Hour)},
		{ID: "c", Published: false, Views: 99, CreatedAt: day.Add(72 * time.Hour)},
		{ID: "d", Published: true, Views: 1, CreatedAt: day.Add(96 * time.Hour)},
	}
}

func itemsOf(pool []core.Post, ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		p, ok := core.FindPost(pool, id)
		if !ok {
			continue
		}
		out = append(out, core.NewItem(p))
	}
	return out
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestTopNNode(t *testing.T) {
	pool := testPool()
	in := itemsOf(pool, "a", "b", "d")

	out, err := (&TopNNode{N: 2}).Process(context.Background(), nil, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(out))

	out, err = (&TopNNode{}).Process(context.Background(), &core.RecommendContext{Limit: 1}, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(out))

	// 未配置上限时不截断
	out, err = (&TopNNode{}).Process(context.Background(), nil, in)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestBackfillNode_Recent(t *testing.T) {
	pool := testPool()
	rctx := &core.RecommendContext{TargetID: "t", Pool: pool, Limit: 3}

	out, err := (&BackfillNode{}).Process(context.Background(), rctx, itemsOf(pool, "a"))
	require.NoError(t, err)
	// c 未发布，t 是目标，a 已入选
	assert.Equal(t, []string{"a", "d", "b"}, ids(out))
	assert.Equal(t, "backfill", out[1].Labels[utils.LabelRelatedReason].Value)
	assert.Equal(t, "recall.recent", out[1].Labels[utils.LabelRelatedReason].Source)
	_, ok := out[0].Labels[utils.LabelRelatedReason]
	assert.False(t, ok)
}

func TestBackfillNode_Popular(t *testing.T) {
	pool := testPool()
	rctx := &core.RecommendContext{TargetID: "t", Pool: pool, Limit: 2}

	out, err := (&BackfillNode{Source: &recall.Popular{}}).Process(context.Background(), rctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(out))
}

func TestBackfillNode_Full(t *testing.T) {
	pool := testPool()
	rctx := &core.RecommendContext{TargetID: "t", Pool: pool, Limit: 2}
	in := itemsOf(pool, "d", "a")

	out, err := (&BackfillNode{}).Process(context.Background(), rctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a"}, ids(out))
}

func TestBackfillNode_Exhausted(t *testing.T) {
	pool := testPool()
	rctx := &core.RecommendContext{TargetID: "t", Pool: pool, Limit: 10}

	out, err := (&BackfillNode{}).Process(context.Background(), rctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "b", "a"}, ids(out))
}

func TestDiversity(t *testing.T) {
	pool := testPool()
	in := itemsOf(pool, "a", "b", "d", "t")
	in[0].PutLabel(utils.LabelPrimaryTag, utils.Label{Value: "React"})
	in[1].PutLabel(utils.LabelPrimaryTag, utils.Label{Value: "React"})
	in[2].PutLabel(utils.LabelPrimaryTag, utils.Label{Value: "Docker"})

	out, err := (&Diversity{}).Process(context.Background(), nil, in)
	require.NoError(t, err)
	// t 没有主标签，保留
	assert.Equal(t, []string{"a", "d", "t"}, ids(out))

	out, err = (&Diversity{LabelKey: "missing"}).Process(context.Background(), nil, in)
	require.NoError(t, err)
	assert.Len(t, out, 4)
}
