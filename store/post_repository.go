package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/postkit/core"
)

// PostRepository 把文章快照保存在 KeyValueStore 中，供命令行等离线场景加载候选全集。
//
// key 约定：
//   - 文章：{Prefix}:post:{id}，值为 JSON
//   - 时间线：{Prefix}:timeline，有序集合，分数为创建时间（unix 秒）
type PostRepository struct {
	store  core.KeyValueStore
	Prefix string
}

// NewPostRepository 创建文章仓库，prefix 为空时使用 "posts"。
func NewPostRepository(s core.KeyValueStore, prefix string) *PostRepository {
	if prefix == "" {
		prefix = "posts"
	}
	return &PostRepository{store: s, Prefix: prefix}
}

func (r *PostRepository) postKey(id string) string {
	return r.Prefix + ":post:" + id
}

func (r *PostRepository) timelineKey() string {
	return r.Prefix + ":timeline"
}

// Save 写入（或覆盖）文章并更新时间线。
func (r *PostRepository) Save(ctx context.Context, posts ...core.Post) error {
	if len(posts) == 0 {
		return nil
	}
	kvs := make(map[string][]byte, len(posts))
	for _, p := range posts {
		if p.ID == "" {
			return fmt.Errorf("save post: %w", core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: post id is empty"))
		}
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal post %s: %w", p.ID, err)
		}
		kvs[r.postKey(p.ID)] = data
	}
	if err := r.store.BatchSet(ctx, kvs); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	for _, p := range posts {
		if err := r.store.ZAdd(ctx, r.timelineKey(), float64(p.CreatedAt.Unix()), p.ID); err != nil {
			return fmt.Errorf("index post %s: %w", p.ID, err)
		}
	}
	return nil
}

// Get 读取单篇文章，不存在时返回 core.ErrStoreNotFound。
func (r *PostRepository) Get(ctx context.Context, id string) (core.Post, error) {
	data, err := r.store.Get(ctx, r.postKey(id))
	if err != nil {
		return core.Post{}, err
	}
	var p core.Post
	if err := json.Unmarshal(data, &p); err != nil {
		return core.Post{}, fmt.Errorf("unmarshal post %s: %w", id, err)
	}
	return p, nil
}

// Delete 删除文章及其时间线记录。
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, r.postKey(id)); err != nil {
		return err
	}
	return r.store.ZRem(ctx, r.timelineKey(), id)
}

// All 按时间线（最新在前）返回全部文章；时间线上存在但数据已丢失的文章被跳过。
func (r *PostRepository) All(ctx context.Context) ([]core.Post, error) {
	ids, err := r.store.ZRange(ctx, r.timelineKey(), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("load timeline: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.postKey(id))
	}
	raw, err := r.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	posts := make([]core.Post, 0, len(ids))
	for _, k := range keys {
		data, ok := raw[k]
		if !ok {
			continue
		}
		var p core.Post
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", k, err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}
