// Package tagging 从文章正文推导展示/相似度用的标签。
//
// 标签不落库，每次按需从正文计算：先按词表整词匹配，一个都没命中时
// 依次走语言关键词组、内容类型启发式、通用主题轮转补位。
package tagging

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rushteam/postkit/core"
)

// DefaultMaxTags 每篇文章默认最多提取的标签数。
const DefaultMaxTags = 3

// Tagger 是标签提取器。零值可用：使用内置词表与 DefaultMaxTags。
// Tagger 不持有可变状态，可并发使用。
type Tagger struct {
	// Vocabulary 词表（按扫描顺序），为空时使用包级 Vocabulary
	Vocabulary []string

	// MaxTags 最多提取的标签数，<= 0 时使用 DefaultMaxTags
	MaxTags int
}

// NewTagger 创建一个使用内置词表的 Tagger。
func NewTagger(maxTags int) *Tagger {
	return &Tagger{MaxTags: maxTags}
}

// ExtractTags 使用内置词表提取标签。
func ExtractTags(content string, maxTags int) []string {
	return NewTagger(maxTags).Extract(content)
}

func (t *Tagger) maxTags() int {
	if t == nil || t.MaxTags <= 0 {
		return DefaultMaxTags
	}
	return t.MaxTags
}

func (t *Tagger) vocabulary() []string {
	if t == nil || len(t.Vocabulary) == 0 {
		return Vocabulary
	}
	return t.Vocabulary
}

// Extract 提取正文标签，结果按词表扫描顺序排列，长度不超过 MaxTags。
// 空白正文返回 nil；其他正文至少返回一个标签。
func (t *Tagger) Extract(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	limit := t.maxTags()
	lower := strings.ToLower(content)

	tags := make([]string, 0, limit)
	for _, term := range t.vocabulary() {
		if len(tags) >= limit {
			break
		}
		if containsWord(lower, strings.ToLower(term)) {
			tags = appendUnique(tags, term)
		}
	}
	if len(tags) > 0 {
		return tags
	}

	return fallbackTags(content, lower, limit)
}

func fallbackTags(content, lower string, limit int) []string {
	tags := make([]string, 0, limit)

	for _, g := range languageGroups {
		if len(tags) >= limit {
			break
		}
		if g.matches(lower) {
			tags = appendUnique(tags, g.Tag)
		}
	}

	if len(tags) < limit {
		for _, g := range contentTypeGroups {
			if g.matches(lower) {
				tags = appendUnique(tags, g.Tag)
				break
			}
		}
	}

	// 通用主题轮转补位：起点由正文长度决定，同一正文结果稳定
	offset := utf8.RuneCountInString(content) % len(GenericTopics)
	for i := 0; i < len(GenericTopics) && len(tags) < limit; i++ {
		tags = appendUnique(tags, GenericTopics[(offset+i)%len(GenericTopics)])
	}
	return tags
}

func (g keywordGroup) matches(lower string) bool {
	for _, kw := range g.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// containsWord 判断 term 是否以整词形式出现在 text 中：
// 前后相邻字符都不能是字母、数字或下划线。两者都应已转小写。
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; start <= len(text)-len(term); {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)

		before, _ := utf8.DecodeLastRuneInString(text[:i])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return false
}

func isWordRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// TaggedPost 是带展示标签的文章，用于列表页装饰。
type TaggedPost struct {
	core.Post
	Tags []string `json:"tags"`
}

// Decorate 为每篇文章计算展示标签，保持输入顺序。
func (t *Tagger) Decorate(posts []core.Post) []TaggedPost {
	out := make([]TaggedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, TaggedPost{Post: p, Tags: t.Extract(p.Content)})
	}
	return out
}

// DistinctTags 返回全站去重后的标签集合，按首次出现顺序排列。
func (t *Tagger) DistinctTags(posts []core.Post) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range posts {
		for _, tag := range t.Extract(p.Content) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
