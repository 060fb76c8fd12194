// Package dsl 提供基于 CEL (Common Expression Language) 的 Item 表达式求值。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/postkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的布尔表达式，线程安全，可多次求值。
//
// 表达式语法（CEL 标准语法）：
//   - 文章：item.views >= 100 / item.published / item.title.contains("React")
//   - 分数：item.score > 0.2
//   - 时间：item.created_at > 1700000000（unix 秒）
//   - 标签：label.recall_source == "tagged"（访问不存在的 key 会报错，先用 "k" in label 判断）
//   - 请求：rctx.scene == "blog" / rctx.params.lang == "en"
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；语法或类型错误返回包装了 core.ErrInvalidExpr 的错误。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidExpr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidExpr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Eval 对 item 求值，表达式必须返回布尔值。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(BuildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression must return boolean, got %T", core.ErrInvalidExpr, out.Value())
	}
	return result, nil
}

// Evaluate 编译并求值一次表达式，空表达式视为 true。
func Evaluate(expr string, item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if expr == "" {
		return true, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Eval(item, rctx)
}

// BuildInput 构建 CEL 表达式的输入数据
func BuildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	itemMap := map[string]any{}
	labels := map[string]any{}
	if item != nil {
		itemMap["id"] = item.ID
		itemMap["score"] = item.Score
		features := item.Features
		if features == nil {
			features = map[string]float64{}
		}
		itemMap["features"] = features
		if p := item.Post; p != nil {
			itemMap["title"] = p.Title
			itemMap["content"] = p.Content
			itemMap["published"] = p.Published
			itemMap["views"] = p.Views
			itemMap["created_at"] = p.CreatedAt.Unix()
		}
		for k, v := range item.Labels {
			labels[k] = v.Value
		}
	}

	rctxMap := map[string]any{}
	if rctx != nil {
		rctxMap["target_id"] = rctx.TargetID
		rctxMap["scene"] = rctx.Scene
		params := rctx.Params
		if params == nil {
			params = map[string]any{}
		}
		rctxMap["params"] = params
	}

	return map[string]any{
		"item":  itemMap,
		"label": labels,
		"rctx":  rctxMap,
	}
}
