package filter

import (
	"context"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/pkg/dsl"
)

// ExprFilter 用 CEL 表达式决定保留哪些文章：表达式为 true 的 Item 保留，
// 为 false 的被过滤。例如：
//
//	item.views >= 100
//	!item.title.startsWith("[draft]")
//	label.recall_source == "tagged"
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式；表达式无效时返回 core.ErrInvalidExpr。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := f.program.Eval(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
