package rank

import (
	"context"
	"sort"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/model"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/pkg/utils"
	"github.com/rushteam/postkit/similarity"
)

// SimilarityNode 计算每个候选与目标文章的相关度并排序。
//   - 写入 features：tag_score / title_score / content_score
//   - 写入 labels：related_reason=similar 及三项子分数、primary_tag
//   - 丢弃分数 <= 0 的候选（无相关性）
//   - 按分数降序稳定排序：分数相同保持输入顺序
//
// 目标文章不存在时返回空结果而不是错误。
type SimilarityNode struct {
	Scorer *similarity.Scorer

	// Model 可选：基于三项子分数重新计算总分；为空时使用 Scorer 的加权和
	Model model.RankModel
}

func (n *SimilarityNode) Name() string        { return "rank.similarity" }
func (n *SimilarityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil || !rctx.ResolveTarget() || len(items) == 0 {
		return nil, nil
	}
	scorer := n.Scorer
	if scorer == nil {
		scorer = &similarity.Scorer{}
	}
	target := scorer.Profile(rctx.Target)

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Post == nil {
			continue
		}
		profile := scorer.Profile(it.Post)
		bd := scorer.Compare(target, profile)
		if it.Features == nil {
			it.Features = make(map[string]float64, 3)
		}
		it.Features[utils.LabelTagScore] = bd.Tag
		it.Features[utils.LabelTitleScore] = bd.Title
		it.Features[utils.LabelContentScore] = bd.Content

		score := bd.Total
		if n.Model != nil {
			s, err := n.Model.Predict(it.Features)
			if err != nil {
				return nil, err
			}
			score = s
		}
		if score <= 0 {
			continue
		}
		it.Score = score

		it.PutLabel(utils.LabelRelatedReason, utils.Label{Value: "similar", Source: "rank"})
		it.PutLabel(utils.LabelTagScore, utils.ScoreLabel(bd.Tag, "rank"))
		it.PutLabel(utils.LabelTitleScore, utils.ScoreLabel(bd.Title, "rank"))
		it.PutLabel(utils.LabelContentScore, utils.ScoreLabel(bd.Content, "rank"))
		if _, ok := it.Labels[utils.LabelPrimaryTag]; !ok {
			if len(profile.TagList) > 0 {
				it.PutLabel(utils.LabelPrimaryTag, utils.Label{Value: profile.TagList[0], Source: "rank"})
			}
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
