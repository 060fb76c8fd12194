package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rushteam/postkit/core"
	"github.com/rushteam/postkit/related"
	"github.com/rushteam/postkit/store"
	"github.com/rushteam/postkit/tagging"
)

// openStore 打开 Redis 存储，测试中会被替换。
var openStore = func(ctx context.Context) (core.KeyValueStore, error) {
	if redisAddr == "" {
		return nil, errors.New("--redis-addr is required")
	}
	return store.NewRedisStore(ctx, redisAddr, redisDB)
}

// explainedPost 是 --explain 的输出格式。
type explainedPost struct {
	ID     string            `json:"id"`
	Title  string            `json:"title"`
	Score  float64           `json:"score"`
	Labels map[string]string `json:"labels,omitempty"`
}

func runRelated(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), timeout)
	defer cancel()

	cfg := related.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = related.LoadConfig(configPath); err != nil {
			return err
		}
	}
	ranker, err := related.New(cfg, related.WithLogger(logger))
	if err != nil {
		return err
	}

	posts, err := loadPosts(ctx)
	if err != nil {
		return err
	}
	logger.Debug("posts loaded", zap.Int("count", len(posts)))

	items, err := ranker.RelatedItems(ctx, posts, targetID, limit)
	if err != nil {
		return err
	}
	if !explain {
		return writeJSON(cmd.OutOrStdout(), core.ItemsToPosts(items))
	}

	out := make([]explainedPost, 0, len(items))
	for _, it := range items {
		ep := explainedPost{ID: it.ID, Score: it.Score, Labels: make(map[string]string, len(it.Labels))}
		if it.Post != nil {
			ep.Title = it.Post.Title
		}
		for k, lbl := range it.Labels {
			ep.Labels[k] = lbl.Value
		}
		out = append(out, ep)
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func runTags(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), timeout)
	defer cancel()

	posts, err := loadPosts(ctx)
	if err != nil {
		return err
	}
	tagger := tagging.NewTagger(maxTags)
	if distinct {
		return writeJSON(cmd.OutOrStdout(), tagger.DistinctTags(posts))
	}
	return writeJSON(cmd.OutOrStdout(), tagger.Decorate(posts))
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), timeout)
	defer cancel()

	if postsPath == "" {
		return errors.New("--posts is required")
	}
	posts, err := readPostsFile(postsPath)
	if err != nil {
		return err
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := store.NewPostRepository(s, keyPrefix).Save(ctx, posts...); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	logger.Info("posts imported", zap.Int("count", len(posts)), zap.String("prefix", keyPrefix))
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts\n", len(posts))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadPosts 优先读取 --posts 文件，否则从 Redis 快照加载。
func loadPosts(ctx context.Context) ([]core.Post, error) {
	if postsPath != "" {
		return readPostsFile(postsPath)
	}
	s, err := openStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("no post source: %w", err)
	}
	defer s.Close()
	return store.NewPostRepository(s, keyPrefix).All(ctx)
}

func readPostsFile(path string) ([]core.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	var posts []core.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse posts: %w", err)
	}
	return posts, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
