package parser

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"cv-parser-go/internal/textutil"
	"cv-parser-go/internal/types"
)

// 文件名中的填充词，大小写不敏感
var filenameStop = map[string]struct{}{
	"cv": {}, "resume": {}, "curriculum": {}, "europass": {},
	"final": {}, "draft": {}, "copy": {},
}

var (
	tokenSplitRx   = regexp.MustCompile(`[.\-_\s]+`)
	digitsRx       = regexp.MustCompile(`\d+`)
	linkedinSlugRx = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub)/([A-Za-z0-9\-_.]+)`)
	parenRx        = regexp.MustCompile(`\(.*?\)`)
	yearTokenRx    = regexp.MustCompile(`^(19|20)\d{2}$`)
	versionTokenRx = regexp.MustCompile(`(?i)^v\d+(\.\d+)?$`)
	alphaOnlyRx    = regexp.MustCompile(`^[A-Za-zÀ-ÿ]+$`)
)

// nameCandidate 某个弱信号源给出的姓名候选
type nameCandidate struct {
	source string   // layout / email / linkedin / filename
	tokens []string // 2..4个字母token
}

// canonToken 规范化token用于比较：trim、小写、折叠音标
func canonToken(t string) string {
	return strings.ToLower(textutil.FoldASCII(strings.TrimSpace(t)))
}

// tokenizeBasic 基础分词：按 . _ - 空白切分，去掉数字，只留≥2字母的词
func tokenizeBasic(s string) []string {
	s = textutil.FoldASCII(textutil.Normalize(s))
	s = digitsRx.ReplaceAllString(s, "")
	var out []string
	for _, p := range tokenSplitRx.Split(s, -1) {
		if len(p) >= 2 && alphaOnlyRx.MatchString(p) {
			out = append(out, p)
		}
	}
	if len(out) > 4 {
		out = out[:4]
	}
	return out
}

func linkedinTokens(rawURL string) []string {
	if rawURL == "" {
		return nil
	}
	m := linkedinSlugRx.FindStringSubmatch(rawURL)
	if m == nil {
		return nil
	}
	toks := tokenizeBasic(m[1])
	if len(toks) < 2 {
		return nil
	}
	return toks
}

func emailTokens(email string) []string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return nil
	}
	toks := tokenizeBasic(email[:at])
	if len(toks) < 2 {
		return nil
	}
	return toks
}

func filenameTokens(fn string) []string {
	if fn == "" {
		return nil
	}
	s := strings.TrimSuffix(fn, filepath.Ext(fn))
	s = parenRx.ReplaceAllString(s, " ") // "(luglio 2025)" → " "
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	var clean []string
	for _, p := range strings.Fields(textutil.FoldASCII(textutil.Normalize(s))) {
		pl := strings.ToLower(p)
		if _, stop := filenameStop[pl]; stop {
			continue
		}
		if yearTokenRx.MatchString(pl) || versionTokenRx.MatchString(pl) {
			continue
		}
		if len(p) >= 2 && alphaOnlyRx.MatchString(p) {
			clean = append(clean, p)
		}
	}
	if len(clean) > 4 {
		clean = clean[:4]
	}
	if len(clean) < 2 {
		return nil
	}
	return clean
}

// looksLikePerson 2..4个纯字母token才像人名
func looksLikePerson(toks []string) bool {
	if len(toks) < 2 || len(toks) > 4 {
		return false
	}
	for _, t := range toks {
		if !alphaOnlyRx.MatchString(t) {
			return false
		}
	}
	return true
}

// equivalentTokens 包含式等价：A的token集合是B的子集或反之（大小写、音标不敏感）。
// "anna rossi"与"anna maria rossi"视为同一个人
func equivalentTokens(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[canonToken(t)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[canonToken(t)] = struct{}{}
	}
	if len(setA) == 0 || len(setB) == 0 {
		return false
	}
	subset := func(x, y map[string]struct{}) bool {
		for k := range x {
			if _, ok := y[k]; !ok {
				return false
			}
		}
		return true
	}
	return subset(setA, setB) || subset(setB, setA)
}

// titlecaseSplit 第一个token作名（首字母大写），其余join作姓
func titlecaseSplit(toks []string) (string, string) {
	capitalize := func(t string) string {
		r := []rune(strings.ToLower(t))
		return strings.ToUpper(string(r[0])) + string(r[1:])
	}
	capped := make([]string, len(toks))
	for i, t := range toks {
		capped[i] = capitalize(t)
	}
	return capped[0], strings.Join(capped[1:], " ")
}

// layoutCandidate 版面信号：第0页中1..4个字母词、≥75%首字母大写、无数字的块，
// 按 1/(1+y0) + (x1-x0)/1000 评分（偏好页面顶部且较宽的块，典型的姓名抬头）。
// 返回得分最高的候选，nil表示无
func layoutCandidate(blocks []types.LayoutBlock) []string {
	var best []string
	bestScore := -1.0
	for _, b := range blocks {
		if b.Page != 0 {
			continue
		}
		words := strings.Fields(textutil.Normalize(b.Text))
		if len(words) < 1 || len(words) > 4 {
			continue
		}
		caps, ok := 0, true
		for _, w := range words {
			if !alphaOnlyRx.MatchString(w) {
				ok = false
				break
			}
			r := []rune(w)[0]
			if strings.ToUpper(string(r)) == string(r) {
				caps++
			}
		}
		if !ok || float64(caps)/float64(len(words)) < 0.75 {
			continue
		}
		score := 1.0/(1.0+b.Y0) + (b.X1-b.X0)/1000.0
		if score > bestScore {
			bestScore = score
			best = words
		}
	}
	if len(best) >= 2 && looksLikePerson(best) {
		return best
	}
	return nil
}

// InferName 从多个弱信号推断(名, 姓)：
//  1. 收集linkedin/email/filename候选（版面信号启用时优先直取版面候选）
//  2. 按包含式等价分组
//  3. 某组≥2个不同来源 → 共识成立，取组内最短变体
//  4. 否则固定优先级回退：linkedin > email > filename
//
// 零候选返回("", "")。单一信号各自不可靠且错法不同，
// 三个独立弱信号做集合重叠投票比信任任何一个都稳
func (p *CVParser) InferName(blocks []types.LayoutBlock, email, linkedin, filename string) (string, string) {
	if p.useLayoutSignal && len(blocks) > 0 {
		if toks := layoutCandidate(blocks); toks != nil {
			return titlecaseSplit(toks)
		}
	}

	var candidates []nameCandidate
	if li := linkedinTokens(linkedin); li != nil && looksLikePerson(li) {
		candidates = append(candidates, nameCandidate{source: "linkedin", tokens: li})
	}
	if em := emailTokens(email); em != nil && looksLikePerson(em) {
		candidates = append(candidates, nameCandidate{source: "email", tokens: em})
	}
	if fn := filenameTokens(filename); fn != nil && looksLikePerson(fn) {
		candidates = append(candidates, nameCandidate{source: "filename", tokens: fn})
	}
	if len(candidates) == 0 {
		return "", ""
	}

	// 包含式等价分组：和组内第一个成员比较即可保证稳定
	var groups [][]nameCandidate
	for _, cand := range candidates {
		placed := false
		for gi := range groups {
			if equivalentTokens(cand.tokens, groups[gi][0].tokens) {
				groups[gi] = append(groups[gi], cand)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []nameCandidate{cand})
		}
	}

	// 评分元组：(不同来源数, 含linkedin, 含email)，字典序
	score := func(g []nameCandidate) (int, int, int) {
		sources := make(map[string]struct{})
		for _, c := range g {
			sources[c.source] = struct{}{}
		}
		li, em := 0, 0
		if _, ok := sources["linkedin"]; ok {
			li = 1
		}
		if _, ok := sources["email"]; ok {
			em = 1
		}
		return len(sources), li, em
	}

	best := groups[0]
	bn, bl, be := score(best)
	for _, g := range groups[1:] {
		n, l, e := score(g)
		if n > bn || (n == bn && (l > bl || (l == bl && e > be))) {
			best, bn, bl, be = g, n, l, e
		}
	}

	if bn >= 2 {
		// 共识：取最短的token变体（"Anna Rossi"优于"Anna Maria Rossi"）
		sort.SliceStable(best, func(i, j int) bool {
			return len(best[i].tokens) < len(best[j].tokens)
		})
		return titlecaseSplit(best[0].tokens)
	}

	for _, prefer := range []string{"linkedin", "email", "filename"} {
		for _, c := range candidates {
			if c.source == prefer {
				return titlecaseSplit(c.tokens)
			}
		}
	}
	return "", ""
}
