package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/store"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func writePosts(t *testing.T) string {
	t.Helper()
	posts := []core.Post{
		{ID: "t", Title: "Getting Started with React Hooks", Content: "Learn react hooks today.", Published: true, CreatedAt: day},
		{ID: "a", Title: "Advanced React Patterns", Content: "Building react apps.", Published: true, CreatedAt: day.Add(24 * time.Hour)},
		{ID: "c", Title: "Docker Basics", Content: "Containers using docker.", Published: true, CreatedAt: day.Add(48 * time.Hour)},
		{ID: "x", Title: "Draft", Content: "react hooks", Published: false, CreatedAt: day.Add(72 * time.Hour)},
	}
	data, err := json.Marshal(posts)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// resetFlags 恢复包级 flag 变量，避免测试之间互相影响。
func resetFlags(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	prevOpen := openStore
	t.Cleanup(func() {
		postsPath, redisAddr, keyPrefix, configPath = "", "", "posts", ""
		targetID, limit, explain, distinct, maxTags = "", -1, false, false, 0
		openStore = prevOpen
	})
	postsPath, redisAddr, keyPrefix, configPath = "", "", "posts", ""
	targetID, limit, explain, distinct, maxTags = "", -1, false, false, 0
	timeout = 5 * time.Second
}

func newCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunRelated(t *testing.T) {
	resetFlags(t)
	postsPath = writePosts(t)
	targetID = "t"

	cmd, buf := newCmd()
	require.NoError(t, runRelated(cmd, nil))

	var got []core.Post
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestRunRelated_Explain(t *testing.T) {
	resetFlags(t)
	postsPath = writePosts(t)
	targetID = "t"
	explain = true
	limit = 1

	cmd, buf := newCmd()
	require.NoError(t, runRelated(cmd, nil))

	var got []explainedPost
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "similar", got[0].Labels["related_reason"])
	assert.Greater(t, got[0].Score, 0.0)
}

func TestRunRelated_Config(t *testing.T) {
	resetFlags(t)
	postsPath = writePosts(t)
	targetID = "t"
	configPath = filepath.Join(t.TempDir(), "related.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("backfill: none\n"), 0o600))

	cmd, buf := newCmd()
	require.NoError(t, runRelated(cmd, nil))

	var got []core.Post
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	require.NoError(t, os.WriteFile(configPath, []byte("backfill: sideways\n"), 0o600))
	assert.ErrorIs(t, runRelated(cmd, nil), core.ErrInvalidConfig)
}

func TestRunRelated_NoSource(t *testing.T) {
	resetFlags(t)
	targetID = "t"
	cmd, _ := newCmd()
	assert.Error(t, runRelated(cmd, nil))
}

func TestRunTags(t *testing.T) {
	resetFlags(t)
	postsPath = writePosts(t)
	distinct = true

	cmd, buf := newCmd()
	require.NoError(t, runTags(cmd, nil))

	var got []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"React", "Hooks", "Docker"}, got)

	distinct = false
	maxTags = 1
	buf.Reset()
	require.NoError(t, runTags(cmd, nil))
	var decorated []struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decorated))
	require.Len(t, decorated, 4)
	assert.Equal(t, []string{"React"}, decorated[0].Tags)
}

type memoryOpener struct {
	s *store.MemoryStore
}

func (o memoryOpener) open(context.Context) (core.KeyValueStore, error) {
	return o.s, nil
}

func TestRunImportThenRelated(t *testing.T) {
	resetFlags(t)
	mem := store.NewMemoryStore()
	defer mem.Close()
	openStore = memoryOpener{s: mem}.open

	postsPath = writePosts(t)
	cmd, buf := newCmd()
	require.NoError(t, runImport(cmd, nil))
	assert.Contains(t, buf.String(), "imported 4 posts")

	// 不给 --posts 时从存储加载
	postsPath = ""
	targetID = "t"
	buf.Reset()
	require.NoError(t, runRelated(cmd, nil))

	var got []core.Post
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}

func TestRunImport_RequiresPosts(t *testing.T) {
	resetFlags(t)
	cmd, _ := newCmd()
	assert.Error(t, runImport(cmd, nil))
}
