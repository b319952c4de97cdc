package locale

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"cv-parser-go/internal/textutil"
)

// 电话候选子串：以+或数字开头、允许空格/括号/连字符分隔的长数字串
var phoneCandidateRx = regexp.MustCompile(`\+?\d[\d ().\-/]{5,}\d`)

// NormPhone 快速清理一个"脏"电话号码：只保留数字和开头的'+'。
// 不做有效性校验，校验交给phonenumbers
func NormPhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	plus := strings.HasPrefix(s, "+")
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	if plus {
		return "+" + b.String()
	}
	return b.String()
}

// PhoneCandidates 从文本中提取有效电话并按出现顺序返回E.164格式。
// 不带区号偏好（region-agnostic）：只有携带国际前缀的号码才会通过校验。
// 结果按值去重。从不报错。
func PhoneCandidates(text string) []string {
	var out []string
	for _, cand := range phoneCandidateRx.FindAllString(text, -1) {
		num, err := phonenumbers.Parse(cand, "")
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(num) {
			continue
		}
		out = append(out, phonenumbers.Format(num, phonenumbers.E164))
	}
	return textutil.DedupeKeepOrder(out)
}

// FormatE164 把电话号码规整为E.164："+"开头时不带区号解析，
// 否则用regionHint（空则US）。无效号码返回""
func FormatE164(raw, regionHint string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	region := ""
	if !strings.HasPrefix(s, "+") {
		region = regionHint
		if region == "" {
			region = "US"
		}
	}
	num, err := phonenumbers.Parse(s, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// CountryFromPhone 由E.164号码推断国家（ISO规范英文名）。
// 例："+39..." → "Italy"。失败返回""
func CountryFromPhone(e164 string) string {
	if e164 == "" {
		return ""
	}
	num, err := phonenumbers.Parse(e164, "")
	if err != nil {
		return ""
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == "" {
		return ""
	}
	return countryNameFromRegion(region)
}

// RegionFromPhone 由电话号码推断(alpha2, name)，供地区投票使用。
// 无国际前缀时以US作宽松兜底再试一次（与评分端一致）
func RegionFromPhone(raw string) (string, string) {
	s := NormPhone(raw)
	if s == "" {
		return "", ""
	}
	if num, err := phonenumbers.Parse(s, ""); err == nil && phonenumbers.IsValidNumber(num) {
		if region := phonenumbers.GetRegionCodeForNumber(num); region != "" {
			return region, countryNameFromRegion(region)
		}
	}
	if num, err := phonenumbers.Parse(s, "US"); err == nil && phonenumbers.IsPossibleNumber(num) {
		if region := phonenumbers.GetRegionCodeForNumber(num); region != "" {
			return region, countryNameFromRegion(region)
		}
	}
	return "", ""
}
