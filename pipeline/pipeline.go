package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rushteam/postkit/core"
)

// Pipeline 把相关文章逻辑拆成可组合的 Node 链。
type Pipeline struct {
	Nodes []Node

	// Logger 为空时不输出日志
	Logger *zap.Logger
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Run 依次执行各 Node，任何 Node 出错即中止并返回带 Node 名称的错误。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	log := p.logger()
	if rctx != nil && rctx.RequestID != "" {
		log = log.With(zap.String("request_id", rctx.RequestID))
	}

	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			log.Warn("node failed",
				zap.String("node", node.Name()),
				zap.String("kind", string(node.Kind())),
				zap.Error(err))
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		log.Debug("node done",
			zap.String("node", node.Name()),
			zap.String("kind", string(node.Kind())),
			zap.Int("in", len(cur)),
			zap.Int("out", len(next)))
		cur = next
	}
	return cur, nil
}
