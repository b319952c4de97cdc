package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"cv-parser-go/internal/locale"
	"cv-parser-go/internal/textutil"
	"cv-parser-go/internal/types"
)

var (
	emailRx    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	webRx      = regexp.MustCompile(`(?i)(https?://[^\s]+|www\.[^\s]+)`)
	linkedinRx = regexp.MustCompile(`(?i)(https?://)?(www\.)?linkedin\.com/[^\s,;]+`)
	githubRx   = regexp.MustCompile(`(?i)(https?://)?(www\.)?github\.com/[^\s,;]+`)

	// 工作/教育小节标题的多语言词根：联系区到此为止
	cutoffRx = regexp.MustCompile(`(?i)(experien|esperien|employment|impiego|beruf|lavor|career|history|work|educat|formaz|istruz|ausbild|stud|school|univers|degree|training)`)

	cap5Rx  = regexp.MustCompile(`\b(\d{5})\b`)
	cap46Rx = regexp.MustCompile(`\b(\d{4,6})\b`)

	cityLabelRx  = regexp.MustCompile(`(?i)\b(citt[aà]|city)\s*[:\-]\s*([A-Z][A-Za-zÀ-ÿ' -]{1,48})\b`)
	trailParenRx = regexp.MustCompile(`\s*\(.+?\)$`)
	cityShapeRx  = regexp.MustCompile(`^([A-ZÀ-Þ][a-zà-ÿ]+(?: [A-ZÀ-Þ][a-zà-ÿ]+){0,2})$`)
	digitRun2Rx  = regexp.MustCompile(`\d{2,}`)

	// 带个人/地址标签的"Label: value"行，不能当作街道地址
	labelishRx = regexp.MustCompile(`(?i)\b(paese|nazionalit[aà]|data di nascita|luogo di nascita|sesso|citt[aà]|indirizzo|address|email|telefono|phone)\b`)

	capWordRx  = regexp.MustCompile(`^[A-ZÀ-Þ][a-zà-ÿ]+`)
	hasAlphaRx = regexp.MustCompile(`[A-Za-zÀ-ÿ]`)
)

const (
	headerZoneLines  = 120 // 联系区最多的非噪声行数
	headerScanLines  = 200 // 搜索cutoff标题的范围
	countryScanLines = 80  // 自由文本国家扫描的范围
)

// looksLikeAddress 街道地址启发式：8..120字符、无":"标签、
// 至少一个数字token、至少一个首字母大写的词、≥2个字母词
func looksLikeAddress(line string) bool {
	s := strings.Trim(line, " ,;.")
	n := len([]rune(s))
	if n < 8 || n > 120 {
		return false
	}
	if strings.Contains(s, ":") {
		return false
	}
	tokens := strings.Fields(s)
	hasDigits, hasCapWord, alphaWords := false, false, 0
	for _, t := range tokens {
		if strings.ContainsFunc(t, unicode.IsDigit) {
			hasDigits = true
		}
		if capWordRx.MatchString(t) {
			hasCapWord = true
		}
		if hasAlphaRx.MatchString(t) {
			alphaWords++
		}
	}
	return hasDigits && hasCapWord && alphaWords >= 2
}

// looksLikeCity 首字母大写的1..3词短行（无@、URL、长数字串），返回城市名或""
func looksLikeCity(line string) string {
	s := strings.TrimSpace(line)
	if strings.Contains(s, "@") || strings.Contains(s, "://") || digitRun2Rx.MatchString(s) {
		return ""
	}
	m := cityShapeRx.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	city := strings.TrimSpace(m[1])
	if n := len([]rune(city)); n < 2 || n > 48 {
		return ""
	}
	return city
}

// ExtractContacts 从全文提取联系方式。各步骤相互独立且都是可选的：
// 失败的步骤把自己的字段留为""，绝不影响其他步骤。
func ExtractContacts(text string) types.ContactInfo {
	var out types.ContactInfo

	txt := textutil.Normalize(text)
	var allLines []string
	for _, l := range strings.Split(txt, "\n") {
		if !textutil.IsNoise(l) {
			allLines = append(allLines, l)
		}
	}

	// 联系区：前~120行，或遇到工作/教育标题更早截止，
	// 避免把职位描述里的电话当成联系电话
	cutoff := -1
	limit := min(headerScanLines, len(allLines))
	for i, l := range allLines[:limit] {
		if isHeading(l) && cutoffRx.MatchString(strings.ToLower(l)) {
			cutoff = i
			break
		}
	}
	if cutoff < 0 {
		cutoff = min(headerZoneLines, len(allLines))
	}
	lines := allLines[:cutoff]
	zone := strings.Join(lines, "\n")

	// email / social / 网站：各取第一个匹配，裸域名补https://
	if m := emailRx.FindString(zone); m != "" {
		out.Email = m
	}
	if m := linkedinRx.FindString(zone); m != "" {
		out.LinkedIn = ensureScheme(m)
	}
	if m := githubRx.FindString(zone); m != "" {
		out.GitHub = ensureScheme(m)
	}
	for _, w := range webRx.FindAllString(zone, -1) {
		lw := strings.ToLower(w)
		if strings.Contains(lw, "linkedin.com") || strings.Contains(lw, "github.com") {
			continue
		}
		out.Website = ensureScheme(w)
		break
	}

	// 电话：第一个候选→telefono，第二个→cellulare
	phones := locale.PhoneCandidates(zone)
	if len(phones) > 0 {
		out.Phone = phones[0]
		if len(phones) > 1 {
			out.Mobile = phones[1]
		}
	}

	// 国家，优先级：电话前缀 → TLD（网站、email、linkedin、github）→ 顶部自由文本
	top := strings.Join(lines[:min(countryScanLines, len(lines))], "\n")
	country := ""
	if out.Phone != "" {
		country = locale.CountryFromPhone(out.Phone)
	}
	if country == "" {
		for _, src := range []string{out.Website, out.Email, out.LinkedIn, out.GitHub} {
			if src == "" {
				continue
			}
			if country = locale.CountryFromTLD(src); country != "" {
				break
			}
		}
	}
	if country == "" {
		country = locale.CountryFromText(top)
	}
	out.Address.Country = locale.NormalizeCountry(country)

	// 邮编：意大利严格5位；其他4..6位但排除1900..2099（日历年误报）
	if strings.EqualFold(out.Address.Country, "Italy") {
		if m := cap5Rx.FindStringSubmatch(top); m != nil {
			out.Address.PostalCode = m[1]
		}
	} else {
		if m := cap46Rx.FindStringSubmatch(top); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil && !(y >= 1900 && y <= 2099) {
				out.Address.PostalCode = m[1]
			}
		}
	}

	// 城市：显式"città:/city:"标签优先（去掉尾部括号注记），
	// 否则保守扫描短的大写开头行，排除国家名（避免把"Italy"当城市）
	for _, l := range lines {
		if mm := cityLabelRx.FindStringSubmatch(l); mm != nil {
			out.Address.City = strings.TrimSpace(trailParenRx.ReplaceAllString(strings.TrimSpace(mm[2]), ""))
			break
		}
	}
	if out.Address.City == "" {
		personToks := emailTokens(out.Email)
		if personToks == nil {
			personToks = linkedinTokens(out.LinkedIn)
		}
		for _, l := range lines {
			s := strings.TrimSpace(l)
			if strings.Contains(s, ":") {
				continue
			}
			if len([]rune(s)) > 48 || len(strings.Fields(s)) > 3 {
				continue
			}
			c := looksLikeCity(s)
			if c == "" {
				continue
			}
			if n := locale.NormalizeCountry(c); n != "" && strings.EqualFold(n, c) {
				continue
			}
			// 候选和email/linkedin推出的人名重合时跳过，抬头的姓名行不是城市
			if personToks != nil && equivalentTokens(strings.Fields(c), personToks) {
				continue
			}
			out.Address.City = c
			break
		}
	}

	// 街道：跳过带个人/地址标签的"Label: value"行，取第一条地址形状行
	for _, l := range lines {
		if strings.Contains(l, ":") && labelishRx.MatchString(l) {
			continue
		}
		if looksLikeAddress(l) {
			out.Address.Street = strings.Trim(l, " ,;.")
			break
		}
	}

	return out
}

func ensureScheme(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
