package recall

import (
	"context"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/pkg/textutil"
	"github.com/rushteam/postkit/pkg/utils"
	"github.com/rushteam/postkit/tagging"
)

// Tagged 召回与目标文章至少共享一个标签的文章，按输入顺序返回。
// 用于候选全集很大时缩小打分范围；目标不存在时返回空。
type Tagged struct {
	Tagger *tagging.Tagger
}

func (r *Tagged) Name() string        { return "recall.tagged" }
func (r *Tagged) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Tagged) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Tagged) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, nil
	}
	// 只读访问 rctx：Fanout 会并发调用各召回源
	target := rctx.Target
	if target == nil {
		var ok bool
		if target, ok = core.FindPost(rctx.Pool, rctx.TargetID); !ok {
			return nil, nil
		}
	}
	tagger := r.Tagger
	if tagger == nil {
		tagger = tagging.NewTagger(tagging.DefaultMaxTags)
	}
	targetTags := textutil.NewTokenSet(tagger.Extract(target.Content)...)
	if targetTags.Len() == 0 {
		return nil, nil
	}

	out := make([]*core.Item, 0)
	for i := range rctx.Pool {
		p := &rctx.Pool[i]
		if p.ID == target.ID {
			continue
		}
		shared := ""
		for _, tag := range tagger.Extract(p.Content) {
			if targetTags.Has(tag) {
				shared = tag
				break
			}
		}
		if shared == "" {
			continue
		}
		it := core.NewItem(p)
		it.PutLabel(utils.LabelRecallSource, utils.Label{Value: "tagged", Source: "recall"})
		it.PutLabel(utils.LabelPrimaryTag, utils.Label{Value: shared, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
