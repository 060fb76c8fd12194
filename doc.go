// Package postkit 是博客"相关文章"工具包。
//
// 设计要点：
// - Pipeline-first: 相关文章逻辑由 Node 串联（Recall → Filter → Rank → ReRank）
// - Labels-first: 每条结果带 labels（相关原因、子分数、主标签），便于 explain
// - 纯函数语义: 候选全集由调用方显式传入，不读取包级可变状态
package postkit

import (
	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pipeline"
	"github.com/rushteam/postkit/related"
	"github.com/rushteam/postkit/tagging"
)

// 轻量 facade：便于直接 import "postkit" 使用核心能力。
type (
	Post     = core.Post
	Pipeline = pipeline.Pipeline
	Node     = pipeline.Node
	Kind     = pipeline.Kind
)

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// GetRelatedPosts 返回与 targetID 最相关的至多 limit 篇已发布文章，不足时用最新文章补位。
func GetRelatedPosts(posts []Post, targetID string, limit int) []Post {
	return related.GetRelatedPosts(posts, targetID, limit)
}

// ExtractTags 从正文提取至多 maxTags 个展示标签。
func ExtractTags(content string, maxTags int) []string {
	return tagging.ExtractTags(content, maxTags)
}
