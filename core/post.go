package core

import "time"

// Post 是内容站点中的一篇文章，由外部内容服务提供。
// 对排序链路而言 Post 只读：任何 Node 都不应修改其字段。
type Post struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Published bool      `json:"published" yaml:"published"`
	Views     int64     `json:"views" yaml:"views"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// FindPost 按 ID 查找文章，找不到时返回 (nil, false)。
func FindPost(posts []Post, id string) (*Post, bool) {
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], true
		}
	}
	return nil, false
}
