// Package textutil 提供与简历领域无关的通用文本工具：
// 脏字符串归一化、噪声行过滤、保序去重、按词截断、音标折叠。
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	hspaceRx  = regexp.MustCompile(`[ \t]+`)
	symbolsRx = regexp.MustCompile(`^[\W_]+$`)
	privacyRx = regexp.MustCompile(`(?i)(autorizz\w*).*?(trattament\w*).*?(dati|personali)`)
)

// Normalize 归一化一个"脏"字符串：
// - 去掉零宽字符和BOM
// - 统一换行符
// - 压缩连续的水平空白为单个空格
// - 逐行trim并trim整体结果
// 幂等：Normalize(Normalize(s)) == Normalize(s)
func Normalize(s string) string {
	s = strings.NewReplacer("\u200b", "", "\ufeff", "", "\r\n", "\n", "\r", "\n").Replace(s)
	s = hspaceRx.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// IsNoise 判断一行是否为"噪声"：
// - 只有符号/空白
// - 过短（<=1字符）
// - GDPR隐私授权套话（该句单独由privacy提取器处理）
func IsNoise(line string) bool {
	l := strings.TrimSpace(line)
	if l == "" || len([]rune(l)) <= 1 {
		return true
	}
	if symbolsRx.MatchString(l) {
		return true
	}
	return privacyRx.MatchString(l)
}

// DedupeKeepOrder 保序去重，比较键为小写形式
func DedupeKeepOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		k := strings.ToLower(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

const ellipsis = "…"

// Shorten 把字符串截断到maxChars个rune，尽量保留完整单词，超长时追加省略号
func Shorten(s string, maxChars int) string {
	s = Normalize(s)
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	cut := maxChars - len([]rune(ellipsis))
	if cut <= 0 {
		return string([]rune(ellipsis)[:maxChars])
	}
	head := string(r[:cut])
	// 尝试在最后一个完整单词处截断；切点太靠前就放弃
	if i := strings.LastIndex(head, " "); i >= 0 && i >= cut*6/10 {
		head = head[:i]
	}
	return strings.TrimRight(head, " ") + ellipsis
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldASCII 去掉音标符号（"Rossì" → "Rossi"），转换失败时返回原串
func FoldASCII(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}
