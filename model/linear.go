package model

import (
	"encoding/json"
	"os"

	"github.com/rushteam/postkit/pkg/utils"
)

// FeatureWeight 是单个特征的权重。
type FeatureWeight struct {
	Feature string  `json:"feature" yaml:"feature"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// LinearModel 是线性加权模型：score = Bias + Σ Weight_i * Feature_i。
//
// 与逻辑回归不同，这里不做 Sigmoid 变换，分数与相似度同量纲；
// 按 Weights 的顺序累加，保证浮点结果稳定。缺失的特征视为 0。
type LinearModel struct {
	Bias    float64
	Weights []FeatureWeight
}

// NewSimilarityModel 返回与默认相关度公式等价的线性模型（0.4 / 0.3 / 0.3）。
func NewSimilarityModel(tag, title, content float64) *LinearModel {
	return &LinearModel{Weights: []FeatureWeight{
		{Feature: utils.LabelTagScore, Weight: tag},
		{Feature: utils.LabelTitleScore, Weight: title},
		{Feature: utils.LabelContentScore, Weight: content},
	}}
}

// LoadLinearModel 从 JSON 文件加载模型：{"bias": 0, "weights": [{"feature": "...", "weight": 0.4}]}。
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Bias    float64         `json:"bias"`
		Weights []FeatureWeight `json:"weights"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &LinearModel{Bias: raw.Bias, Weights: raw.Weights}, nil
}

func (m *LinearModel) Name() string { return "linear" }

func (m *LinearModel) Predict(features map[string]float64) (float64, error) {
	score := m.Bias
	for _, fw := range m.Weights {
		score += fw.Weight * features[fw.Feature]
	}
	return score, nil
}

var _ RankModel = (*LinearModel)(nil)
