// Package related 对外提供"相关文章"能力：给定候选全集与目标文章，
// 返回按相关度排序、不足时用最新文章补位的结果。
//
// 默认链路：
//
//	recall.pool → filter(target, published) → rank.similarity → rerank.topn → rerank.backfill
package related

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rushteam/postkit/config"
	_ "github.com/rushteam/postkit/config/builders"
	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/filter"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/rank"
	"github.com/rushteam/postkit/recall"
	"github.com/rushteam/postkit/rerank"
	"github.com/rushteam/postkit/similarity"
	"github.com/rushteam/postkit/tagging"
)

// DefaultLimit 默认返回条数。
const DefaultLimit = 3

// Ranker 计算相关文章。Ranker 不持有请求状态，可被多个 goroutine 共享。
type Ranker struct {
	pipeline *pipeline.Pipeline
	limit    int
	logger   *zap.Logger
}

// Option 配置 Ranker。
type Option func(*Ranker)

// WithLogger 设置日志；默认不输出。
func WithLogger(l *zap.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

// New 根据配置创建 Ranker。cfg.Nodes 非空时按配置构建 Node 链，否则使用默认链路。
func New(cfg Config, opts ...Option) (*Ranker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	r := &Ranker{limit: cfg.Limit, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	if len(cfg.Nodes) > 0 {
		pc := &pipeline.Config{}
		pc.Pipeline.Nodes = cfg.Nodes
		if err := config.ValidatePipelineConfig(pc); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
		}
		p, err := pc.BuildPipeline(config.DefaultFactory())
		if err != nil {
			return nil, err
		}
		r.pipeline = p
	} else {
		r.pipeline = DefaultPipeline(cfg)
	}
	r.pipeline.Logger = r.logger
	return r, nil
}

// DefaultPipeline 按配置构建默认链路。
func DefaultPipeline(cfg Config) *pipeline.Pipeline {
	cfg = cfg.withDefaults()
	scorer := similarity.NewScorer(cfg.Weights, tagging.NewTagger(cfg.MaxTags))

	nodes := []pipeline.Node{
		&recall.Pool{},
		filter.NewDefaultFilterNode(),
		&rank.SimilarityNode{Scorer: scorer},
		&rerank.TopNNode{},
	}
	switch cfg.Backfill {
	case BackfillPopular:
		nodes = append(nodes, &rerank.BackfillNode{Source: &recall.Popular{}})
	case BackfillNone:
	default:
		nodes = append(nodes, &rerank.BackfillNode{Source: &recall.Recent{}})
	}
	return &pipeline.Pipeline{Nodes: nodes}
}

// Related 返回与 targetID 相关的文章（值拷贝，不修改 posts）。
//
// limit < 0 时使用配置的默认条数，limit == 0 返回空。
// posts 为空或 targetID 不存在时返回空结果，不视为错误。
func (r *Ranker) Related(ctx context.Context, posts []core.Post, targetID string, limit int) ([]core.Post, error) {
	items, err := r.RelatedItems(ctx, posts, targetID, limit)
	if err != nil {
		return nil, err
	}
	return core.ItemsToPosts(items), nil
}

// RelatedItems 与 Related 相同，但返回带分数与 labels 的 Item，便于 explain。
func (r *Ranker) RelatedItems(ctx context.Context, posts []core.Post, targetID string, limit int) ([]*core.Item, error) {
	if limit < 0 {
		limit = r.limit
	}
	if limit == 0 || len(posts) == 0 {
		return []*core.Item{}, nil
	}

	rctx := &core.RecommendContext{
		RequestID: uuid.NewString(),
		Scene:     "related_posts",
		TargetID:  targetID,
		Pool:      posts,
		Limit:     limit,
	}
	if !rctx.ResolveTarget() {
		r.logger.Debug("target post not found", zap.String("target_id", targetID))
		return []*core.Item{}, nil
	}

	items, err := r.pipeline.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	out := finalize(rctx, items)
	r.logger.Debug("related posts ranked",
		zap.String("request_id", rctx.RequestID),
		zap.String("target_id", targetID),
		zap.Int("candidates", len(posts)),
		zap.Int("results", len(out)))
	return out, nil
}

// finalize 保证结果约束与 Node 配置无关：
// 不含目标文章、不含未发布文章、无重复、长度不超过 Limit。
func finalize(rctx *core.RecommendContext, items []*core.Item) []*core.Item {
	out := make([]*core.Item, 0, rctx.Limit)
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if len(out) >= rctx.Limit {
			break
		}
		if !it.Published() || it.ID == rctx.TargetID {
			continue
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

var defaultRanker = func() *Ranker {
	r, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return r
}()

// GetRelatedPosts 使用默认配置计算相关文章。
func GetRelatedPosts(posts []core.Post, targetID string, limit int) []core.Post {
	out, err := defaultRanker.Related(context.Background(), posts, targetID, limit)
	if err != nil {
		return []core.Post{}
	}
	return out
}
