package recall

import (
	"context"

	"github.com/rushteam/postkit/core"
)

// Source 表示一个可复用的召回源（全集 / 最新 / 最热 / 同标签 ...）。
// 所有召回源都只从 rctx.Pool 读取文章。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
