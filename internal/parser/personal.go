package parser

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/locale"
	"cv-parser-go/internal/textutil"
	"cv-parser-go/internal/types"
)

// 个人信息的多语言标签模式——只用常见词形，不维护长清单
var (
	lblDOB  = regexp.MustCompile(`(?i)(data\s*di\s*nascita|date\s*of\s*birth|dob|geburtsdatum|fecha\s*de\s*nacimiento|date\s*de\s*naissance)`)
	lblPOB  = regexp.MustCompile(`(?i)(luogo\s*di\s*nascita|place\s*of\s*birth|geburtsort|lugar\s*de\s*nacimiento|lieu\s*de\s*naissance)`)
	lblNat  = regexp.MustCompile(`(?i)(nazionalit[aà]|nationality|nationalit[yéè])`)
	lblSex  = regexp.MustCompile(`(?i)(sesso|sex|genre|geschlecht|sexo)`)
	lblStat = regexp.MustCompile(`(?i)(stato\s*civile|marital\s*status|familienstand|estado\s*civil|situation\s*familiale)`)

	leadSepRx   = regexp.MustCompile(`^\s*[:\-–—]\s*`)
	tailParRx   = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	pobCutRx    = regexp.MustCompile(`(?i)\b(paese|country|state|nation|citt[aà]|city)\b`)
	natCutRx    = regexp.MustCompile(`(?i)\b(data|luogo|born|birth|citt[aà]|city|paese|country)\b`)
	isoFullRx   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	alphaRuneRx = regexp.MustCompile(`[A-Za-zÀ-ÿ]`)

	dateTokenRxs = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`),
		regexp.MustCompile(`\b\d{1,2}[/\-.]\d{4}\b`),
		regexp.MustCompile(`\b[A-Za-zÀ-ÿ]{3,15}\s+\d{4}\b`),
		regexp.MustCompile(`\b(19|20)\d{2}\b`),
	}
)

// cleanTail 去掉开头的分隔符和尾部括号注记（"(Italia)"）
func cleanTail(v string) string {
	v = textutil.Normalize(v)
	v = leadSepRx.ReplaceAllString(v, "")
	v = tailParRx.ReplaceAllString(v, "")
	return strings.Trim(v, " ,;:|")
}

// firstDateToken 从行中分离出"最像日期"的子串
func firstDateToken(s string) string {
	s = textutil.Normalize(s)
	for _, rx := range dateTokenRxs {
		if m := rx.FindString(s); m != "" {
			return m
		}
	}
	return ""
}

// pickAfterLabel 取同一行的"Label: 值"，否则取下一条非噪声行
func pickAfterLabel(lines []string, lbl *regexp.Regexp) string {
	for i, l := range lines {
		loc := lbl.FindStringIndex(l)
		if loc == nil {
			continue
		}
		tail := cleanTail(l[loc[1]:])
		if tail != "" {
			return tail
		}
		if i+1 < len(lines) {
			nxt := cleanTail(lines[i+1])
			if nxt != "" && !textutil.IsNoise(nxt) {
				return nxt
			}
		}
	}
	return ""
}

// formatDateIT "YYYY-MM-DD" → "DD/MM/YYYY"；非ISO则原样返回
func formatDateIT(isoOrAny string) string {
	m := isoFullRx.FindStringSubmatch(isoOrAny)
	if m == nil {
		return isoOrAny
	}
	return m[3] + "/" + m[2] + "/" + m[1]
}

// normalizeSexMinimal 极简规则，无词表：取第一个字母，f→F、m→M，否则原样
func normalizeSexMinimal(val string) string {
	s := textutil.Normalize(val)
	first := alphaRuneRx.FindString(s)
	switch strings.ToLower(first) {
	case "f":
		return "F"
	case "m":
		return "M"
	}
	return s
}

// ExtractPersonalBlock 用标签行启发式提取个人信息，与小节边界无关。
// 所有键总是返回：无法提取的字段为""
func ExtractPersonalBlock(text string) types.PersonalInfo {
	var lines []string
	for _, l := range strings.Split(textutil.Normalize(text), "\n") {
		if !textutil.IsNoise(l) {
			lines = append(lines, l)
		}
	}

	var out types.PersonalInfo

	if raw := pickAfterLabel(lines, lblDOB); raw != "" {
		token := firstDateToken(raw)
		if token == "" {
			token = raw
		}
		out.BirthDate = formatDateIT(locale.ParseDateAny(token))
	}

	if raw := pickAfterLabel(lines, lblPOB); raw != "" {
		raw = cleanTail(raw)
		if loc := pobCutRx.FindStringIndex(raw); loc != nil {
			raw = raw[:loc[0]]
		}
		out.BirthPlace = strings.Trim(raw, " ,;")
	}

	if raw := pickAfterLabel(lines, lblNat); raw != "" {
		raw = cleanTail(raw)
		if loc := natCutRx.FindStringIndex(raw); loc != nil {
			raw = raw[:loc[0]]
		}
		out.Nationality = strings.Trim(raw, " ,;")
	}

	if raw := pickAfterLabel(lines, lblSex); raw != "" {
		out.Sex = normalizeSexMinimal(raw)
	}

	if raw := pickAfterLabel(lines, lblStat); raw != "" {
		out.MaritalStatus = cleanTail(raw)
	}

	return out
}
