// Package model 定义排序阶段的打分模型。
package model

// RankModel 是排序阶段的最小抽象：输入特征，输出一个可比较的分数。
// 实现必须是确定性的：相同特征得到完全相同的分数。
type RankModel interface {
	Name() string
	Predict(features map[string]float64) (float64, error)
}
