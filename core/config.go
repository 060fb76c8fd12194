package core

// RankConfig 提供相关文章排序的默认值。
type RankConfig interface {
	// DefaultLimit 返回默认的返回条数
	DefaultLimit() int

	// DefaultMaxTags 返回每篇文章最多提取的标签数
	DefaultMaxTags() int

	// DefaultWeights 返回标签/标题/正文三项相似度的默认权重
	DefaultWeights() (tag, title, content float64)
}

// DefaultRankConfig 是默认的排序配置实现。
type DefaultRankConfig struct{}

func (c *DefaultRankConfig) DefaultLimit() int {
	return 3
}

func (c *DefaultRankConfig) DefaultMaxTags() int {
	return 3
}

func (c *DefaultRankConfig) DefaultWeights() (tag, title, content float64) {
	return 0.4, 0.3, 0.3
}

var _ RankConfig = (*DefaultRankConfig)(nil)
