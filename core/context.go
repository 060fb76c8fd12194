package core

import "github.com/rushteam/postkit/pkg/utils"

// RecommendContext 承载一次"相关文章"请求的上下文，贯穿整个 Pipeline 透传。
//
// Pool 是调用方显式传入的候选全集；链路中的任何 Node 都只从这里读取文章，
// 不依赖包级状态。
type RecommendContext struct {
	RequestID string
	Scene     string

	// TargetID 是需要查找相关文章的目标文章
	TargetID string
	// Target 由调用方或 Ranker 解析填充；为空表示目标不存在
	Target *Post

	// Pool 是候选文章全集（输入顺序即稳定排序的次序）
	Pool []Post

	// Limit 最大返回条数
	Limit int

	// Labels 是请求级标签
	Labels map[string]utils.Label

	// Params 请求级参数，例如 scene / client 等
	Params map[string]any
}

// ResolveTarget 在 Pool 中查找 TargetID 并填充 Target，返回是否找到。
func (rctx *RecommendContext) ResolveTarget() bool {
	if rctx == nil {
		return false
	}
	if rctx.Target != nil && rctx.Target.ID == rctx.TargetID {
		return true
	}
	p, ok := FindPost(rctx.Pool, rctx.TargetID)
	if !ok {
		rctx.Target = nil
		return false
	}
	rctx.Target = p
	return true
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
