package pipeline

import (
	"context"

	"github.com/rushteam/postkit/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除目标文章、未发布文章等
	KindRank        Kind = "rank"        // 排序阶段：与目标文章计算相关度并排序
	KindReRank      Kind = "rerank"      // 重排阶段：截断、补位、多样性
	KindPostProcess Kind = "postprocess" // 后处理阶段
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态。Node 不得修改 rctx.Pool 中的文章。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
