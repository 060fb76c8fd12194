package core

import "github.com/rushteam/postkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：文章、分数、特征、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID       string
	Score    float64
	Post     *Post
	Features map[string]float64
	Labels   map[string]utils.Label
}

// NewItem 以文章构造 Item，ID 与文章 ID 一致。
func NewItem(p *Post) *Item {
	it := &Item{
		Features: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
		Post:     p,
	}
	if p != nil {
		it.ID = p.ID
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Published 返回 Item 对应文章是否已发布；无文章视为未发布。
func (it *Item) Published() bool {
	return it != nil && it.Post != nil && it.Post.Published
}

// ItemsToPosts 按顺序取出 Item 中的文章（值拷贝），跳过空 Item。
func ItemsToPosts(items []*Item) []Post {
	out := make([]Post, 0, len(items))
	for _, it := range items {
		if it == nil || it.Post == nil {
			continue
		}
		out = append(out, *it.Post)
	}
	return out
}
