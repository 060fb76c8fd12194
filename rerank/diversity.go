package rerank

import (
	"context"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/pkg/utils"
)

// Diversity 按主标签去重：同一个主标签只保留首个出现的文章。
// 没有主标签的文章总是保留。应放在 TopN 之前，以免截断后结果过少。
type Diversity struct {
	LabelKey string // 默认 "primary_tag"
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	key := n.LabelKey
	if key == "" {
		key = utils.LabelPrimaryTag
	}

	seen := make(map[string]bool, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		tag := it.Labels[key].Value
		if tag == "" {
			out = append(out, it)
			continue
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, it)
	}
	return out, nil
}
