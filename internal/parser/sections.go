// Package parser 是简历解析核心：把提取层给出的原始文本（可选版面块、文件名）
// 变成结构化的InternalRecord。只用结构/排版启发式，不依赖硬编码词表。
// 包内所有提取函数都是全函数：最坏情况输出空值/占位记录，从不报错。
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"cv-parser-go/internal/textutil"
)

// Section 一个文档小节：标题 + 正文，保持文档顺序
type Section struct {
	Title string
	Body  string
}

var (
	digitRunRx    = regexp.MustCompile(`\d{5,}`)
	headingWordRx = regexp.MustCompile(`[^\W\d_][\wÀ-ÿ'-]*`)
)

// isHeading 判断一行是否具有"标题形状"：
//   - trim后2..60字符
//   - 不以":"结尾（排除"Città:"这类标签行）
//   - 不含@、://、连续5位以上数字（排除联系方式行）
//   - 至少一个词，且整行大写 或 ≥70%的词首字母大写
func isHeading(line string) bool {
	s := textutil.Normalize(line)
	if len([]rune(s)) < 2 || len([]rune(s)) > 60 {
		return false
	}
	if strings.HasSuffix(s, ":") {
		return false
	}
	if strings.Contains(s, "@") || strings.Contains(s, "://") || digitRunRx.MatchString(s) {
		return false
	}
	words := headingWordRx.FindAllString(s, -1)
	if len(words) == 0 {
		return false
	}
	if s == strings.ToUpper(s) {
		return true
	}
	caps := 0
	for _, w := range words {
		if unicode.IsUpper([]rune(w)[0]) {
			caps++
		}
	}
	return float64(caps)/float64(len(words)) >= 0.7
}

// DetectSections 把全文切成有序小节。
// 标题形状行只有在前一行或后一行为空时才被接受（隔离规则），
// 防止段落中的零散短行被误判为标题。
// 不变量：结果永不为空；一个标题都没有时整篇文本成为单一"body"小节
func DetectSections(text string) []Section {
	txt := textutil.Normalize(text)
	lines := strings.Split(txt, "\n")

	var idxs []int
	for i, l := range lines {
		if !isHeading(l) {
			continue
		}
		prevBlank := i == 0 || strings.TrimSpace(lines[i-1]) == ""
		nextBlank := i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == ""
		if prevBlank || nextBlank {
			idxs = append(idxs, i)
		}
	}

	if len(idxs) == 0 {
		return []Section{{Title: "body", Body: txt}}
	}

	var sections []Section
	for j, i := range idxs {
		end := len(lines)
		if j+1 < len(idxs) {
			end = idxs[j+1]
		}
		body := strings.TrimSpace(strings.Join(lines[i+1:end], "\n"))
		if body == "" {
			continue
		}
		sections = append(sections, Section{Title: textutil.Normalize(lines[i]), Body: body})
	}
	if len(sections) == 0 {
		return []Section{{Title: "body", Body: txt}}
	}
	return sections
}
