package filter

import (
	"context"

	"github.com/rushteam/postkit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个 Item 是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

// TargetFilter 过滤掉目标文章本身。
type TargetFilter struct{}

func (f *TargetFilter) Name() string { return "filter.target" }

func (f *TargetFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return rctx != nil && item.ID == rctx.TargetID, nil
}

// PublishedFilter 过滤掉未发布（或缺少文章数据）的 Item。
type PublishedFilter struct{}

func (f *PublishedFilter) Name() string { return "filter.published" }

func (f *PublishedFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return !item.Published(), nil
}
