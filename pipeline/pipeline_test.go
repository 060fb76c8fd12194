package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rushteam/postkit/core"
)

type appendNode struct {
	name string
	id   string
	err  error
}

func (n *appendNode) Name() string { return n.name }
func (n *appendNode) Kind() Kind   { return KindRecall }

func (n *appendNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	if n.err != nil {
		return nil, n.err
	}
	return append(items, &core.Item{ID: n.id}), nil
}

func TestPipelineRun(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	p := &Pipeline{
		Nodes: []Node{
			&appendNode{name: "first", id: "a"},
			&appendNode{name: "second", id: "b"},
		},
		Logger: zap.New(obsCore),
	}
	items, err := p.Run(context.Background(), newContext("req-1"), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)

	entries := logs.FilterMessage("node done").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "second", entries[1].ContextMap()["node"])
}

func TestPipelineRun_NodeError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{
		Nodes: []Node{
			&appendNode{name: "ok", id: "a"},
			&appendNode{name: "broken", err: boom},
			&appendNode{name: "never", id: "c"},
		},
	}
	items, err := p.Run(context.Background(), newContext(""), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
	assert.Nil(t, items)
}

func TestPipelineRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Pipeline{Nodes: []Node{&appendNode{name: "first", id: "a"}}}
	_, err := p.Run(ctx, newContext(""), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigBuildPipeline(t *testing.T) {
	cfg, err := ParseYAML([]byte(`
pipeline:
  name: related
  nodes:
    - type: append
      config:
        id: x
    - type: append
      config:
        id: y
`))
	require.NoError(t, err)
	assert.Equal(t, "related", cfg.Pipeline.Name)

	factory := NewNodeFactory()
	factory.Register("append", func(c map[string]any) (Node, error) {
		id, _ := c["id"].(string)
		return &appendNode{name: "append", id: id}, nil
	})
	p, err := cfg.BuildPipeline(factory)
	require.NoError(t, err)

	items, err := p.Run(context.Background(), newContext(""), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "y", items[1].ID)

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, NodeConfig{Type: "missing"})
	_, err = cfg.BuildPipeline(factory)
	assert.Error(t, err)
}

func TestLoadFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pipeline":{"name":"j","nodes":[{"type":"recall.pool"}]}}`), 0o600))

	cfg, err := LoadFromJSON(path)
	require.NoError(t, err)
	require.Len(t, cfg.Pipeline.Nodes, 1)
	assert.Equal(t, "recall.pool", cfg.Pipeline.Nodes[0].Type)

	_, err = LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func newContext(requestID string) *core.RecommendContext {
	return &core.RecommendContext{RequestID: requestID}
}
