package locale

import (
	"strings"

	"cv-parser-go/internal/types"
)

// Region 地区推断结果
type Region struct {
	Alpha2 string
	Name   string
}

// voteRegion 在各信号源（电话、TLD、文本）之间做多数投票，
// 返回得票最多的(alpha2, name)；无信号时返回零值
func voteRegion(signals [][2]string) Region {
	counts := make(map[string]int)
	names := make(map[string]string)
	var order []string
	for _, sig := range signals {
		code, name := sig[0], sig[1]
		if code == "" {
			continue
		}
		k := strings.ToUpper(code)
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
		if names[k] == "" && name != "" {
			names[k] = name
		}
	}
	best, bestVotes := "", 0
	for _, k := range order {
		if counts[k] > bestVotes {
			best, bestVotes = k, counts[k]
		}
	}
	if best == "" {
		return Region{}
	}
	name := names[best]
	if name == "" {
		name = countryNameFromRegion(best)
	}
	return Region{Alpha2: best, Name: name}
}

// GuessRegion 结合多个弱信号推断最可能的国家：
//   - 电话/手机的国际前缀
//   - email/网站/linkedin/github的TLD
//   - 地址国家、出生地、国籍的自由文本
//
// 单一信号各有各的不可靠，多数投票明显更稳。从不报错
func GuessRegion(rec *types.InternalRecord) Region {
	if rec == nil {
		return Region{}
	}
	c := rec.Contacts
	signals := [][2]string{
		pair(RegionFromPhone(c.Phone)),
		pair(RegionFromPhone(c.Mobile)),
		pair(RegionFromTLD(c.Email)),
		pair(RegionFromTLD(c.Website)),
		pair(RegionFromTLD(c.LinkedIn)),
		pair(RegionFromTLD(c.GitHub)),
		pair(RegionFromText(c.Address.Country)),
		pair(RegionFromText(rec.Personal.BirthPlace)),
		pair(RegionFromText(rec.Personal.Nationality)),
	}
	return voteRegion(signals)
}

func pair(code, name string) [2]string {
	return [2]string{code, name}
}
