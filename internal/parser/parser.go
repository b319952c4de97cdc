package parser

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/textutil"
	"cv-parser-go/internal/types"
)

const maxSectionTitles = 15

// 定位各小节的多语言标题词根。匹配做在小写标题上
var (
	langSectionRx  = regexp.MustCompile(`(?i)(lingu|idiom|sprach|langu)`)
	skillSectionRx = regexp.MustCompile(`(?i)(skill|competenz|habilidad|comp[ée]tence|f[äa]higkeit|tecnolog)`)
	expSectionRx   = regexp.MustCompile(`(?i)(experien|esperien|employment|impiego|beruf|lavor|career|history|work)`)
	eduSectionRx   = regexp.MustCompile(`(?i)(educat|formaz|istruz|ausbild|stud|school|univers|degree|training)`)
)

// CVParser 解析核心入口。并发安全：不持有可变状态
type CVParser struct {
	useLayoutSignal bool
}

// Option 定义CVParser的配置选项
type Option func(*CVParser)

// WithLayoutSignal 启用版面信号：名字推断优先使用版面块（页面顶部的姓名抬头）。
// 默认关闭——版面坐标跨提取器不稳定，纯文本共识投票是缺省路径
func WithLayoutSignal(enabled bool) Option {
	return func(p *CVParser) {
		p.useLayoutSignal = enabled
	}
}

// NewCVParser 创建解析核心实例
func NewCVParser(opts ...Option) *CVParser {
	p := &CVParser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// findSection 返回第一个标题匹配词根的小节正文；没有则""
func findSection(sections []Section, rx *regexp.Regexp) string {
	for _, s := range sections {
		if rx.MatchString(strings.ToLower(s.Title)) {
			return s.Body
		}
	}
	return ""
}

// ParseTextToInternal 把归一化前的原始文本解析为完整的InternalRecord。
// blocks和filename是可选的弱信号，传零值即可。
// 全函数：任何输入都产出合法记录，列表字段永不为nil
func (p *CVParser) ParseTextToInternal(rawText string, blocks []types.LayoutBlock, filename string) *types.InternalRecord {
	text := textutil.Normalize(rawText)

	sections := DetectSections(text)
	contacts := ExtractContacts(text)

	givenName, surname := p.InferName(blocks, contacts.Email, contacts.LinkedIn, filename)

	personal := ExtractPersonalBlock(text)
	personal.Name = givenName
	personal.Surname = surname

	langBody := findSection(sections, langSectionRx)
	skillBody := findSection(sections, skillSectionRx)
	expBody := findSection(sections, expSectionRx)
	eduBody := findSection(sections, eduSectionRx)

	titles := make([]string, 0, min(len(sections), maxSectionTitles))
	for _, s := range sections[:min(len(sections), maxSectionTitles)] {
		titles = append(titles, s.Title)
	}

	rec := &types.InternalRecord{
		Personal:       personal,
		Contacts:       contacts,
		Education:      ExtractEducation(eduBody),
		Experience:     ExtractExperience(expBody),
		Skills:         ExtractSkills(skillBody, text),
		Languages:      ExtractLanguages(langBody),
		SoftSkills:     []string{},
		Certifications: []types.Certification{},
		Projects:       []types.Project{},
		Publications:   []types.Publication{},
		Interests:      []string{},
		Licences:       []string{},
		Privacy:        ExtractPrivacy(text),
		Availability:   types.Availability{PreferredContract: []string{}},
		Meta:           &types.Meta{SectionTitles: titles},
	}

	logger.Debug().
		Int("sections", len(sections)).
		Bool("has_email", contacts.Email != "").
		Bool("has_name", givenName != "").
		Int("experience_entries", len(rec.Experience)).
		Int("education_entries", len(rec.Education)).
		Msg("文本解析完成")

	return rec
}
