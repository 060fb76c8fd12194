// Package store 提供 core.Store / core.KeyValueStore 的实现，以及基于它们的文章仓库。
//
// 注意：此包只包含实现，接口定义在 core 包。
//
// 示例：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	repo := store.NewPostRepository(kv, "blog")
package store
