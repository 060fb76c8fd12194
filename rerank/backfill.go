package rerank

import (
	"context"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/pkg/utils"
	"github.com/rushteam/postkit/recall"
)

// BackfillNode 在结果不足时补位：从 Source（默认最新文章）按顺序取
// 已发布、非目标、尚未入选的文章追加到末尾，直到达到上限或候选耗尽。
// 已有结果的顺序保持不变。
type BackfillNode struct {
	// Source 补位来源，为空时使用 recall.Recent
	Source recall.Source

	// N 结果上限；N <= 0 时使用 rctx.Limit
	N int
}

func (n *BackfillNode) Name() string {
	return "rerank.backfill"
}

func (n *BackfillNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *BackfillNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := resolveLimit(n.N, rctx)
	if limit <= 0 || len(items) >= limit || rctx == nil {
		return items, nil
	}

	src := n.Source
	if src == nil {
		src = &recall.Recent{}
	}
	candidates, err := src.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]struct{}, limit)
	out := make([]*core.Item, 0, limit)
	for _, it := range items {
		if it == nil {
			continue
		}
		selected[it.ID] = struct{}{}
		out = append(out, it)
	}

	for _, it := range candidates {
		if len(out) >= limit {
			break
		}
		if it == nil || !it.Published() || it.ID == rctx.TargetID {
			continue
		}
		if _, ok := selected[it.ID]; ok {
			continue
		}
		selected[it.ID] = struct{}{}
		it.PutLabel(utils.LabelRelatedReason, utils.Label{Value: "backfill", Source: src.Name()})
		out = append(out, it)
	}
	return out, nil
}
