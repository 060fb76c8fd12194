package recall

import (
	"context"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/pkg/utils"
)

// Pool 把 rctx.Pool 中的每篇文章按输入顺序转换为 Item。
// 它不做任何筛选，目标文章与未发布文章交给 filter 阶段剔除。
// Pool 同时实现了 Source 和 Node 接口。
type Pool struct{}

func (r *Pool) Name() string        { return "recall.pool" }
func (r *Pool) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，忽略上游 items
func (r *Pool) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Pool) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || len(rctx.Pool) == 0 {
		return nil, nil
	}
	out := make([]*core.Item, 0, len(rctx.Pool))
	for i := range rctx.Pool {
		it := core.NewItem(&rctx.Pool[i])
		it.PutLabel(utils.LabelRecallSource, utils.Label{Value: "pool", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
