package locale

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/biter777/countries"
	"golang.org/x/net/publicsuffix"

	"cv-parser-go/internal/textutil"
)

var (
	isoCodeRx = regexp.MustCompile(`\b([A-Z]{2,3})\b`)
	wordRx    = regexp.MustCompile(`[A-Za-zÀ-ÿ]+`)
	punctRx   = regexp.MustCompile(`[^\w ]+`)
)

// 历史/特殊TLD别名
var tldAliases = map[string]string{"uk": "GB", "el": "GR"}

func countryNameFromRegion(alpha2 string) string {
	cc := countries.ByName(strings.ToUpper(alpha2))
	if !cc.IsValid() {
		return ""
	}
	return cc.String()
}

// NormalizeCountry 把国家名或代码归一化为ISO规范英文名。
// 接受alpha-2/alpha-3代码和各种名称变体（"U.S.A."、"IT"、"Italy"…）。
// 无法识别返回""
func NormalizeCountry(nameOrCode string) string {
	s := textutil.Normalize(nameOrCode)
	if s == "" {
		return ""
	}
	if cc := countries.ByName(s); cc.IsValid() {
		return cc.String()
	}
	// 去掉常见标点再试（U.S.A. → USA）
	s2 := strings.TrimSpace(punctRx.ReplaceAllString(s, " "))
	if s2 != "" && s2 != s {
		if cc := countries.ByName(s2); cc.IsValid() {
			return cc.String()
		}
	}
	return ""
}

// CountryFromText 从自由文本中识别国家，只依赖ISO数据库，不用硬编码清单。
// 顺序：显式ISO代码 → 双词短语（"United States"）→ 单词（≥4字母，
// 避免"in"/"al"这类介词误中alpha-2）。失败返回""
func CountryFromText(text string) string {
	s := textutil.Normalize(text)
	if s == "" {
		return ""
	}

	for _, m := range isoCodeRx.FindAllString(s, -1) {
		if cc := countries.ByName(m); cc.IsValid() {
			return cc.String()
		}
	}

	words := wordRx.FindAllString(s, -1)
	for i := 0; i+1 < len(words); i++ {
		if cc := countries.ByName(words[i] + " " + words[i+1]); cc.IsValid() {
			return cc.String()
		}
	}

	for _, w := range words {
		if len([]rune(w)) < 4 {
			continue
		}
		if cc := countries.ByName(w); cc.IsValid() {
			return cc.String()
		}
	}
	return ""
}

// hostOf 从URL或email中取出主机名
func hostOf(urlOrEmail string) string {
	s := strings.TrimSpace(urlOrEmail)
	if s == "" {
		return ""
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		return strings.ToLower(s[i+1:])
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// CountryFromTLD 由域名后缀的最后一个label推断国家（弱信号）。
// "example.co.uk" → uk → "United Kingdom"。失败返回""
func CountryFromTLD(urlOrEmail string) string {
	_, name := RegionFromTLD(urlOrEmail)
	return name
}

// RegionFromTLD 同CountryFromTLD，但返回(alpha2, name)，供地区投票使用
func RegionFromTLD(urlOrEmail string) (string, string) {
	host := hostOf(urlOrEmail)
	if host == "" {
		return "", ""
	}
	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == "" {
		return "", ""
	}
	labels := strings.Split(suffix, ".")
	cc := labels[len(labels)-1]
	if alias, ok := tldAliases[cc]; ok {
		cc = alias
	}
	if len(cc) != 2 {
		return "", ""
	}
	name := countryNameFromRegion(cc)
	if name == "" {
		return "", ""
	}
	return strings.ToUpper(cc), name
}

// RegionFromText 同CountryFromText的(alpha2, name)变体，供地区投票使用
func RegionFromText(text string) (string, string) {
	name := CountryFromText(text)
	if name == "" {
		return "", ""
	}
	cc := countries.ByName(name)
	if !cc.IsValid() {
		return "", ""
	}
	return cc.Alpha2(), name
}
