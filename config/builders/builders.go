// Package builders 注册内置 Node 的配置构建器，以 blank import 方式引入：
//
//	import _ "github.com/rushteam/postkit/config/builders"
package builders

import (
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/postkit/config"
	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/filter"
	"github.com/rushteam/postkit/model"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/pkg/conv"
	"github.com/rushteam/postkit/rank"
	"github.com/rushteam/postkit/recall"
	"github.com/rushteam/postkit/rerank"
	"github.com/rushteam/postkit/similarity"
	"github.com/rushteam/postkit/tagging"
)

func init() {
	config.Register("recall.pool", BuildPoolNode)
	config.Register("recall.recent", BuildRecentNode)
	config.Register("recall.popular", BuildPopularNode)
	config.Register("recall.tagged", BuildTaggedNode)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rank.similarity", BuildSimilarityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.backfill", BuildBackfillNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{core.ErrInvalidConfig}, args...)...)
}

func BuildPoolNode(map[string]any) (pipeline.Node, error) {
	return &recall.Pool{}, nil
}

func BuildRecentNode(cfg map[string]any) (pipeline.Node, error) {
	return &recall.Recent{TopK: int(conv.ConfigGetInt64(cfg, "top_k", 0))}, nil
}

func BuildPopularNode(cfg map[string]any) (pipeline.Node, error) {
	return &recall.Popular{TopK: int(conv.ConfigGetInt64(cfg, "top_k", 0))}, nil
}

func BuildTaggedNode(cfg map[string]any) (pipeline.Node, error) {
	return &recall.Tagged{Tagger: tagging.NewTagger(int(conv.ConfigGetInt64(cfg, "max_tags", 0)))}, nil
}

// buildSource 构建 fanout 中的单个召回源。
func buildSource(cfg map[string]any) (recall.Source, error) {
	switch t := conv.ConfigGet(cfg, "type", ""); t {
	case "pool":
		return &recall.Pool{}, nil
	case "recent":
		return &recall.Recent{TopK: int(conv.ConfigGetInt64(cfg, "top_k", 0))}, nil
	case "popular":
		return &recall.Popular{TopK: int(conv.ConfigGetInt64(cfg, "top_k", 0))}, nil
	case "tagged":
		return &recall.Tagged{Tagger: tagging.NewTagger(int(conv.ConfigGetInt64(cfg, "max_tags", 0)))}, nil
	default:
		return nil, invalid("unknown source type: %q", t)
	}
}

func BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig := conv.SliceAnyToMaps(cfg["sources"])
	if len(sourcesConfig) == 0 {
		return nil, invalid("recall.fanout: sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		src, err := buildSource(sc)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet(cfg, "dedup", true),
	}
	if ms := conv.ConfigGetInt64(cfg, "timeout_ms", 0); ms > 0 {
		fanout.Timeout = time.Duration(ms) * time.Millisecond
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

// BuildFilterNode 构建过滤 Node；target / published 两个过滤器总是生效。
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	extra := make([]filter.Filter, 0)
	for _, fc := range conv.SliceAnyToMaps(cfg["filters"]) {
		switch t := conv.ConfigGet(fc, "type", ""); t {
		case "target", "published":
			// 默认已包含
		case "blacklist":
			extra = append(extra, filter.NewBlacklistFilter(conv.SliceAnyToString(fc["ids"]), nil, ""))
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(fc, "expr", ""))
			if err != nil {
				return nil, err
			}
			extra = append(extra, f)
		default:
			return nil, invalid("unknown filter type: %q", t)
		}
	}
	return filter.NewDefaultFilterNode(extra...), nil
}

// BuildSimilarityNode 支持：
//
//	max_tags: 3
//	weights: {tag: 0.4, title: 0.3, content: 0.3}
//	model: {bias: 0, weights: {tag_score: 0.5, title_score: 0.5}}
func BuildSimilarityNode(cfg map[string]any) (pipeline.Node, error) {
	var weights similarity.Weights
	if wm := conv.ConfigGet[map[string]any](cfg, "weights", nil); wm != nil {
		weights = similarity.Weights{
			Tag:     conv.ConfigGetFloat64(wm, "tag", 0),
			Title:   conv.ConfigGetFloat64(wm, "title", 0),
			Content: conv.ConfigGetFloat64(wm, "content", 0),
		}
	}
	node := &rank.SimilarityNode{
		Scorer: similarity.NewScorer(weights, tagging.NewTagger(int(conv.ConfigGetInt64(cfg, "max_tags", 0)))),
	}

	if mc := conv.ConfigGet[map[string]any](cfg, "model", nil); mc != nil {
		fw := conv.MapToFloat64(conv.ConfigGet[map[string]any](mc, "weights", nil))
		if len(fw) == 0 {
			return nil, invalid("rank.similarity: model weights not found")
		}
		features := make([]string, 0, len(fw))
		for f := range fw {
			features = append(features, f)
		}
		// 固定累加顺序，保证分数稳定
		sort.Strings(features)
		lm := &model.LinearModel{Bias: conv.ConfigGetFloat64(mc, "bias", 0)}
		for _, f := range features {
			lm.Weights = append(lm.Weights, model.FeatureWeight{Feature: f, Weight: fw[f]})
		}
		node.Model = lm
	}
	return node, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildBackfillNode(cfg map[string]any) (pipeline.Node, error) {
	node := &rerank.BackfillNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}
	switch s := conv.ConfigGet(cfg, "source", "recent"); s {
	case "recent", "":
		node.Source = &recall.Recent{}
	case "popular":
		node.Source = &recall.Popular{}
	default:
		return nil, invalid("rerank.backfill: unknown source %q", s)
	}
	return node, nil
}

func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{LabelKey: conv.ConfigGet(cfg, "label_key", "")}, nil
}
