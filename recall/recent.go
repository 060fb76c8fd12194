package recall

import (
	"context"
	"sort"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/pkg/utils"
)

// Recent 是最新文章召回源：已发布、非目标文章，按创建时间降序。
// 创建时间相同时保持输入顺序。
type Recent struct {
	// TopK 最多返回条数，<= 0 表示不限制
	TopK int
}

func (r *Recent) Name() string        { return "recall.recent" }
func (r *Recent) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Recent) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Recent) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	return publishedSorted(rctx, r.TopK, "recent", func(a, b *core.Post) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

// Popular 是最热文章召回源：已发布、非目标文章，按浏览数降序，
// 浏览数相同时按创建时间降序。
type Popular struct {
	TopK int
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Popular) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	return publishedSorted(rctx, r.TopK, "popular", func(a, b *core.Post) bool {
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

func publishedSorted(
	rctx *core.RecommendContext,
	topK int,
	source string,
	less func(a, b *core.Post) bool,
) []*core.Item {
	if rctx == nil || len(rctx.Pool) == 0 {
		return nil
	}
	posts := make([]*core.Post, 0, len(rctx.Pool))
	for i := range rctx.Pool {
		p := &rctx.Pool[i]
		if !p.Published || p.ID == rctx.TargetID {
			continue
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return less(posts[i], posts[j])
	})
	if topK > 0 && len(posts) > topK {
		posts = posts[:topK]
	}

	out := make([]*core.Item, 0, len(posts))
	for _, p := range posts {
		it := core.NewItem(p)
		it.PutLabel(utils.LabelRecallSource, utils.Label{Value: source, Source: "recall"})
		out = append(out, it)
	}
	return out
}
