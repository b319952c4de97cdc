package parser

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/locale"
	"cv-parser-go/internal/textutil"
	"cv-parser-go/internal/types"
)

const (
	maxLanguages  = 5
	maxSkills     = 150
	maxSkillLen   = 160
	maxParagraphs = 60
)

var (
	leftCefrRx = regexp.MustCompile(`(?i)^(.*?)\b(A1|A2|B1|B2|C1|C2)\b`)
	bareLangRx = regexp.MustCompile(`^[^\d\W][\wÀ-ÿ' -]{1,23}$`)

	bulletSplitRx = regexp.MustCompile(`[•●\x{25AA}\-,;\n]| {2,}`)
	paragraphRx   = regexp.MustCompile(`\n\s*\n`)

	headerDashRx = regexp.MustCompile(`\s[–—-]\s`)

	// 宽泛的日期区间模式：数字日期 / "Month Year" / 裸年份，
	// 由多语言连接词接起来；右侧也可以是"现在"类词
	dateAltPattern = `\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{1,2}[/\-.]\d{4}|[A-Za-zÀ-ÿ]{3,9}\s+\d{4}|(?:19|20)\d{2}`
	dateRangeRx    = regexp.MustCompile(`(?i)(.{0,30}?)\b(` + dateAltPattern + `)\b.{0,15}?(?:-|–|—|to|a|al|fino a|hasta|bis|à).{0,15}?\b(presente|current|oggi|now|attuale|` + dateAltPattern + `)\b`)

	isoDateRx = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	privacyStemRx = regexp.MustCompile(`(?i)(autorizz\w*|authoriz\w*).*(trattament\w*|process\w*|treat\w*).*(dati|data|personali|personal)`)
)

// ExtractLanguages 从语言小节提取CEFR等级记录。
// 有等级码的行：码左侧为语言名，码同时作为读写等级；
// 一个都没有时回退到小节内短的大写开头行作为裸语言名。
// 只看语言小节本身：没有检测到小节时直接给单条空占位，
// 从全文臆造语言名的代价远高于漏提取。
// 按小写名去重，最多5条
func ExtractLanguages(sectionText string) []types.LanguageSkill {
	var lines []string
	for _, l := range strings.Split(textutil.Normalize(sectionText), "\n") {
		if !textutil.IsNoise(l) {
			lines = append(lines, l)
		}
	}

	var out []types.LanguageSkill
	for _, ln := range lines {
		m := leftCefrRx.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(strings.Trim(m[1], " :–—-|•"))
		if name == "" {
			continue
		}
		lvl := strings.ToUpper(m[2])
		out = append(out, types.LanguageSkill{
			Language: name, WrittenLevel: lvl, SpokenLevel: lvl, Certifications: []string{},
		})
	}

	if len(out) == 0 {
		for _, ln := range lines {
			if len([]rune(ln)) > 24 || !bareLangRx.MatchString(ln) {
				continue
			}
			words := strings.Fields(ln)
			caps := 0
			for _, w := range words {
				if w[:1] == strings.ToUpper(w[:1]) {
					caps++
				}
			}
			if len(words) > 0 && float64(caps)/float64(len(words)) >= 0.5 {
				out = append(out, types.LanguageSkill{
					Language: strings.TrimSpace(ln), Certifications: []string{},
				})
			}
		}
	}

	seen := make(map[string]struct{})
	var ded []types.LanguageSkill
	for _, it := range out {
		k := strings.ToLower(strings.TrimSpace(it.Language))
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ded = append(ded, it)
	}
	if len(ded) > maxLanguages {
		ded = ded[:maxLanguages]
	}
	if len(ded) == 0 {
		return []types.LanguageSkill{types.EmptyLanguageSkill()}
	}
	return ded
}

// ExtractSkills 对技能小节做纯分词：按项目符号、逗号、分号、换行、
// 多空格切分，过滤噪声和超长token，保序去重，最多150条。
// 全部归入"其他技能"：分类猜测需要硬编码词表，这里刻意不做
func ExtractSkills(sectionText, allText string) types.TechnicalSkills {
	txt := sectionText
	if txt == "" {
		txt = allText
	}
	var tokens []string
	for _, t := range bulletSplitRx.Split(txt, -1) {
		t = textutil.Normalize(t)
		if t == "" || textutil.IsNoise(t) || len([]rune(t)) > maxSkillLen {
			continue
		}
		tokens = append(tokens, t)
	}
	other := textutil.DedupeKeepOrder(tokens)
	if len(other) > maxSkills {
		other = other[:maxSkills]
	}
	return types.TechnicalSkills{
		ProgrammingLanguages: []string{},
		Frameworks:           []string{},
		Databases:            []string{},
		Tools:                []string{},
		Methodologies:        []string{},
		Other:                other,
	}
}

// paragraphs 按空行切段，最多60段
func paragraphs(sectionText string) []string {
	var out []string
	for _, p := range paragraphRx.Split(sectionText, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > maxParagraphs {
		out = out[:maxParagraphs]
	}
	return out
}

// firstCity 段落前3行中第一条符合城市形状的行
func firstCity(lines []string) string {
	for _, l := range lines[:min(3, len(lines))] {
		if c := looksLikeCity(l); c != "" {
			return c
		}
	}
	return ""
}

// firstRange 段落前3行中第一个日期区间；没有区间时退而求其次找单个可解析日期
func firstRange(lines []string) (string, string) {
	head := lines[:min(3, len(lines))]
	for _, l := range head {
		if m := dateRangeRx.FindString(l); m != "" {
			return locale.ParseRange(m)
		}
	}
	for _, l := range head {
		if d := locale.ParseDateAny(l); isoDateRx.MatchString(d) {
			return d, ""
		}
	}
	return "", ""
}

// splitHeader 段落第一行拆成(标题, 机构)："Titolo @ Azienda"
// 或"Titolo - Azienda"；两种分隔符都没有时整行是标题
func splitHeader(header string) (string, string) {
	trim := func(s string) string { return strings.Trim(s, " -:|") }
	if i := strings.Index(header, "@"); i >= 0 {
		return trim(header[:i]), trim(header[i+1:])
	}
	if loc := headerDashRx.FindStringIndex(header); loc != nil {
		return trim(header[:loc[0]]), trim(header[loc[1]:])
	}
	return trim(header), ""
}

// nonNoiseLines 段落的非噪声行
func nonNoiseLines(para string) []string {
	var lines []string
	for _, l := range strings.Split(para, "\n") {
		if !textutil.IsNoise(l) {
			lines = append(lines, l)
		}
	}
	return lines
}

// ExtractExperience 把工作经历小节拆成结构化条目。
// 空输入返回单条全空占位记录，永不返回空列表
func ExtractExperience(sectionText string) []types.ExperienceEntry {
	if sectionText == "" {
		return []types.ExperienceEntry{types.EmptyExperienceEntry()}
	}

	var out []types.ExperienceEntry
	for _, para := range paragraphs(sectionText) {
		lines := nonNoiseLines(para)
		if len(lines) == 0 {
			continue
		}
		position, company := splitHeader(lines[0])
		start, end := firstRange(lines)
		entry := types.ExperienceEntry{
			Position:         position,
			Company:          company,
			City:             firstCity(lines),
			StartDate:        start,
			EndDate:          end,
			Responsibilities: []string{},
			Achievements:     []string{},
		}
		if len(lines) > 1 {
			entry.Description = strings.Join(lines[1:], "\n")
		}
		out = append(out, entry)
	}

	if len(out) == 0 {
		return []types.ExperienceEntry{types.EmptyExperienceEntry()}
	}
	return out
}

// ExtractEducation 把教育经历小节拆成结构化条目，结构规则与工作经历一致。
// 空输入返回单条全空占位记录
func ExtractEducation(sectionText string) []types.EducationEntry {
	if sectionText == "" {
		return []types.EducationEntry{types.EmptyEducationEntry()}
	}

	var out []types.EducationEntry
	for _, para := range paragraphs(sectionText) {
		lines := nonNoiseLines(para)
		if len(lines) == 0 {
			continue
		}
		title, institution := splitHeader(lines[0])
		start, end := firstRange(lines)
		entry := types.EducationEntry{
			Title:       title,
			Institution: institution,
			City:        firstCity(lines),
			StartDate:   start,
			EndDate:     end,
		}
		if len(lines) > 1 {
			entry.Description = strings.Join(lines[1:], "\n")
		}
		out = append(out, entry)
	}

	if len(out) == 0 {
		return []types.EducationEntry{types.EmptyEducationEntry()}
	}
	return out
}

// ExtractPrivacy 扫描非噪声行，返回第一条GDPR授权套话（去掉尾部标点），没有则""
func ExtractPrivacy(text string) string {
	for _, ln := range strings.Split(textutil.Normalize(text), "\n") {
		l := strings.TrimSpace(ln)
		if l == "" {
			continue
		}
		if privacyStemRx.MatchString(l) {
			return strings.TrimRight(l, ".,;: ")
		}
	}
	return ""
}
