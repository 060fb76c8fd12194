// Package similarity 计算两篇文章的相关度。
//
// 相关度由三项加权组成：标签重合、标题词重合、正文关键词重合。
// 每一项都是 |A∩B| / max(|A|,|B|)，结果落在 [0,1]。
package similarity

import (
	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pkg/textutil"
	"github.com/rushteam/postkit/tagging"
)

// Weights 是三项子分数的权重，和应为 1。
type Weights struct {
	Tag     float64 `yaml:"tag" json:"tag"`
	Title   float64 `yaml:"title" json:"title"`
	Content float64 `yaml:"content" json:"content"`
}

// DefaultWeights 返回 0.4 / 0.3 / 0.3。
func DefaultWeights() Weights {
	tag, title, content := (&core.DefaultRankConfig{}).DefaultWeights()
	return Weights{Tag: tag, Title: title, Content: content}
}

// IsZero 判断是否未配置权重。
func (w Weights) IsZero() bool {
	return w.Tag == 0 && w.Title == 0 && w.Content == 0
}

// Profile 是一篇文章预先计算好的三组词集合。
type Profile struct {
	// TagList 保留提取顺序，Tags 是同一组标签的集合形式
	TagList []string
	Tags    textutil.TokenSet
	Title   textutil.TokenSet
	Content textutil.TokenSet
}

// Breakdown 是一次打分的明细。
type Breakdown struct {
	Tag     float64
	Title   float64
	Content float64
	Total   float64
}

// Scorer 计算文章间的相关度。零值可用（默认权重 + 默认 Tagger）。
type Scorer struct {
	Weights Weights
	Tagger  *tagging.Tagger
}

// NewScorer 创建一个 Scorer；weights 为零值时使用默认权重。
func NewScorer(weights Weights, tagger *tagging.Tagger) *Scorer {
	return &Scorer{Weights: weights, Tagger: tagger}
}

func (s *Scorer) weights() Weights {
	if s == nil || s.Weights.IsZero() {
		return DefaultWeights()
	}
	return s.Weights
}

func (s *Scorer) tagger() *tagging.Tagger {
	if s == nil || s.Tagger == nil {
		return tagging.NewTagger(tagging.DefaultMaxTags)
	}
	return s.Tagger
}

// Profile 预计算文章的标签、标题词、正文关键词集合。nil 文章返回空 Profile。
func (s *Scorer) Profile(p *core.Post) Profile {
	if p == nil {
		return Profile{}
	}
	tags := s.tagger().Extract(p.Content)
	return Profile{
		TagList: tags,
		Tags:    textutil.NewTokenSet(tags...),
		Title:   textutil.Tokenize(p.Title),
		Content: textutil.Tokenize(textutil.ContentDigest(p.Content)),
	}
}

// Compare 基于预计算的 Profile 打分。
func (s *Scorer) Compare(a, b Profile) Breakdown {
	w := s.weights()
	bd := Breakdown{
		Tag:     textutil.Overlap(a.Tags, b.Tags),
		Title:   textutil.Overlap(a.Title, b.Title),
		Content: textutil.Overlap(a.Content, b.Content),
	}
	bd.Total = w.Tag*bd.Tag + w.Title*bd.Title + w.Content*bd.Content
	return bd
}

// Explain 返回两篇文章的打分明细。
func (s *Scorer) Explain(a, b *core.Post) Breakdown {
	return s.Compare(s.Profile(a), s.Profile(b))
}

// Score 返回两篇文章的相关度，对称：Score(a,b) == Score(b,a)。
func (s *Scorer) Score(a, b *core.Post) float64 {
	return s.Explain(a, b).Total
}
