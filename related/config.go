package related

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/similarity"
)

// Config 是 Ranker 的配置（YAML）。零值字段使用默认值。
//
//	limit: 3
//	max_tags: 3
//	weights: {tag: 0.4, title: 0.3, content: 0.3}
//	backfill: recent        # recent / popular / none
//	nodes:                  # 可选：完全自定义 Node 链
//	  - type: recall.pool
//	  - type: filter
//	  - type: rank.similarity
//	  - type: rerank.topn
//	  - type: rerank.backfill
type Config struct {
	Limit    int                `yaml:"limit"`
	MaxTags  int                `yaml:"max_tags"`
	Weights  similarity.Weights `yaml:"weights"`
	Backfill string             `yaml:"backfill"`

	Nodes []pipeline.NodeConfig `yaml:"nodes,omitempty"`
}

// 补位策略
const (
	BackfillRecent  = "recent"
	BackfillPopular = "popular"
	BackfillNone    = "none"
)

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	defaults := &core.DefaultRankConfig{}
	return Config{
		Limit:    defaults.DefaultLimit(),
		MaxTags:  defaults.DefaultMaxTags(),
		Weights:  similarity.DefaultWeights(),
		Backfill: BackfillRecent,
	}
}

// withDefaults 用默认值补齐零值字段。
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Limit <= 0 {
		c.Limit = d.Limit
	}
	if c.MaxTags <= 0 {
		c.MaxTags = d.MaxTags
	}
	if c.Weights.IsZero() {
		c.Weights = d.Weights
	}
	if c.Backfill == "" {
		c.Backfill = d.Backfill
	}
	return c
}

// Validate 检查配置取值。
func (c Config) Validate() error {
	switch c.Backfill {
	case "", BackfillRecent, BackfillPopular, BackfillNone:
	default:
		return fmt.Errorf("%w: unknown backfill %q", core.ErrInvalidConfig, c.Backfill)
	}
	w := c.Weights
	if w.Tag < 0 || w.Title < 0 || w.Content < 0 {
		return fmt.Errorf("%w: weights must be non-negative", core.ErrInvalidConfig)
	}
	return nil
}

// ParseConfig 解析 YAML 配置。
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

// LoadConfig 从 YAML 文件加载配置。
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read file: %w", err)
	}
	return ParseConfig(data)
}
