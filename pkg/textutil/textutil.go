// Package textutil 提供标题/正文的分词与重合度计算。
//
// 所有函数都是纯函数：不修改输入，不持有状态，可并发调用。
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLen 分词后保留的最短长度（不含），即只保留长度 > 3 的词。
const MinTokenLen = 3

// DigestLines 正文摘要取前几行非空内容。
const DigestLines = 5

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`\n]*`")
	markdownRe   = regexp.MustCompile(`[#*_>\[\]()!~|` + "`" + `]`)
)

// TokenSet 是去重后的词集合。
type TokenSet map[string]struct{}

// Len 返回集合大小。
func (s TokenSet) Len() int { return len(s) }

// Has 判断集合是否包含 tok。
func (s TokenSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// NewTokenSet 由字符串列表构造集合。
func NewTokenSet(items ...string) TokenSet {
	s := make(TokenSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Tokenize 将文本转小写、去标点、按空白切分，保留长度 > 3 的词并去重。
// 空文本返回空集合。
func Tokenize(text string) TokenSet {
	out := make(TokenSet)
	if text == "" {
		return out
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, text)
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) > MinTokenLen {
			out[tok] = struct{}{}
		}
	}
	return out
}

// ContentDigest 提取正文关键词摘要：
// 去掉围栏代码块、行内代码和 markdown 符号，取前 5 行非空内容，转小写后以空格拼接。
func ContentDigest(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	s := fencedCodeRe.ReplaceAllString(content, " ")
	s = inlineCodeRe.ReplaceAllString(s, " ")
	s = markdownRe.ReplaceAllString(s, " ")

	lines := make([]string, 0, DigestLines)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == DigestLines {
			break
		}
	}
	return strings.ToLower(strings.Join(lines, " "))
}

// Overlap 计算 |A∩B| / max(|A|, |B|)，任一集合为空时返回 0。
// 注意分母是较大集合的大小而不是并集大小（不是 Jaccard）。
func Overlap(a, b TokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	common := 0
	for tok := range small {
		if large.Has(tok) {
			common++
		}
	}
	return float64(common) / float64(len(large))
}

// OverlapStrings 与 Overlap 相同，输入为字符串列表（先去重）。
func OverlapStrings(a, b []string) float64 {
	return Overlap(NewTokenSet(a...), NewTokenSet(b...))
}
