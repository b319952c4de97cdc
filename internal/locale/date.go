// Package locale 把自由格式的日期/电话/国家文本转换为规范形式。
// 所有函数都是全函数：任何解析失败都返回零值，从不panic，
// 调用方无需为locale歧义做任何错误处理（设计约定，见解析核心）。
package locale

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"cv-parser-go/internal/textutil"
)

// 多语言月份词干（it/en/fr/de/es），按顺序做前缀匹配。
// 只用短词干而非完整词表，低精度高召回，与标题分类同一取舍
var monthStems = []struct {
	stem  string
	month int
}{
	{"gen", 1}, {"jan", 1}, {"ene", 1},
	{"feb", 2}, {"fev", 2}, {"fév", 2},
	{"mar", 3}, {"mär", 3},
	{"apr", 4}, {"avr", 4}, {"abr", 4},
	{"mag", 5}, {"may", 5}, {"mai", 5},
	{"giu", 6}, {"juin", 6}, {"jun", 6},
	{"lug", 7}, {"juil", 7}, {"jul", 7},
	{"ago", 8}, {"aug", 8}, {"aou", 8}, {"aoû", 8},
	{"set", 9}, {"sep", 9},
	{"ott", 10}, {"oct", 10}, {"okt", 10},
	{"nov", 11},
	{"dic", 12}, {"dec", 12}, {"dez", 12}, {"déc", 12},
}

var (
	monthYearRx = regexp.MustCompile(`(?i)\b(?:([0-3]?\d)\s+)?([A-Za-zÀ-ÿ]{3,15})\.?\s+((?:19|20)\d{2})\b`)
	dmyRx       = regexp.MustCompile(`\b([0-3]?\d)[/\-.]([01]?\d)[/\-.](\d{2,4})\b`)
	ymdRx       = regexp.MustCompile(`\b((?:19|20)\d{2})[/\-.]([01]?\d)[/\-.]([0-3]?\d)\b`)
	myNumRx     = regexp.MustCompile(`\b([01]?\d)[/\-.]((?:19|20)\d{2})\b`)
	ymRx        = regexp.MustCompile(`\b((?:19|20)\d{2})[/\-.]([01]?\d)\b`)
	yearRx      = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	isoRx       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

	presentRx  = regexp.MustCompile(`(?i)\b(presente|present|current|oggi|today|now|attuale|heute|actualidad|aujourd)`)
	rangeSepRx = regexp.MustCompile(`(?i)\s+(?:to|al|a|fino a|hasta|bis|à)\s+|\s*[–—-]\s*`)
)

func monthFromStem(word string) int {
	w := strings.ToLower(textutil.FoldASCII(word))
	for _, ms := range monthStems {
		if strings.HasPrefix(w, strings.ToLower(textutil.FoldASCII(ms.stem))) {
			return ms.month
		}
	}
	return 0
}

func isoDate(y, m, d int) string {
	if m < 1 || m > 12 {
		m = 1
	}
	if d < 1 || d > 31 {
		d = 1
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func expandYear(y int) int {
	// 两位年份：过去优先
	if y < 100 {
		if y <= 29 {
			return 2000 + y
		}
		return 1900 + y
	}
	return y
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseDateAny 多语言、多格式地解释一个日期。
// 策略：月名词干（"ottobre 2019"、"Jul 2021"）→ 数字格式（DMY优先）→
// dateparse通用解析 → 裸年份。缺失的日/月取1，无法解释时返回清理后的原文。
// 从不报错。
func ParseDateAny(s string) string {
	s = textutil.Normalize(s)
	if s == "" {
		return ""
	}

	// "12 ottobre 2019" / "Jul 2021"
	if m := monthYearRx.FindStringSubmatch(s); m != nil {
		if mon := monthFromStem(m[2]); mon != 0 {
			day := 1
			if m[1] != "" {
				day = atoi(m[1])
			}
			return isoDate(atoi(m[3]), mon, day)
		}
	}

	// 数字格式：歧义时假定日-月-年顺序
	if m := ymdRx.FindStringSubmatch(s); m != nil {
		return isoDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := dmyRx.FindStringSubmatch(s); m != nil {
		return isoDate(expandYear(atoi(m[3])), atoi(m[2]), atoi(m[1]))
	}
	if m := ymRx.FindStringSubmatch(s); m != nil {
		return isoDate(atoi(m[1]), atoi(m[2]), 1)
	}
	if m := myNumRx.FindStringSubmatch(s); m != nil {
		return isoDate(atoi(m[2]), atoi(m[1]), 1)
	}

	// 其余英文格式交给dateparse（"January 2, 2006"等）
	if t, err := dateparse.ParseAny(s); err == nil {
		return isoDate(t.Year(), int(t.Month()), t.Day())
	}

	if m := yearRx.FindStringSubmatch(s); m != nil {
		return isoDate(atoi(m[1]), 1, 1)
	}

	// 无法解释：返回清理后的文本
	return s
}

// ParseRange 解释日期区间，如"Gen 2020 - Mag 2022"、"03/2020 to 2023"、"2019 – presente"。
// 返回(startISO, endISO)；右侧是"现在"类词时endISO为""。从不报错。
func ParseRange(s string) (string, string) {
	s = textutil.Normalize(s)
	if s == "" {
		return "", ""
	}
	// 单个完整ISO日期不是区间
	if isoRx.MatchString(s) {
		return s, ""
	}
	if loc := rangeSepRx.FindStringIndex(s); loc != nil {
		start, end := s[:loc[0]], s[loc[1]:]
		if presentRx.MatchString(end) {
			return ParseDateAny(start), ""
		}
		return ParseDateAny(start), ParseDateAny(end)
	}
	return ParseDateAny(s), ""
}
