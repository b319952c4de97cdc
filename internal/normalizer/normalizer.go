// Package normalizer 把解析核心的InternalRecord规整为对外schema：
// 格式校验（email、URL、电话E.164）、长度截断、列表去重，
// 并保证"每个列表至少一个条目、字符串永不为null"的消费方约定。
// 只做形式层面的清理，不做任何词表式的内容推断
package normalizer

import (
	"net/mail"
	"net/url"
	"strings"

	"cv-parser-go/internal/locale"
	"cv-parser-go/internal/textutil"
	"cv-parser-go/internal/types"
)

const (
	maxTextBlock = 2000
	maxShort     = 160
)

// normEmail 校验并规整email，非法返回""
func normEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return ""
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || !strings.Contains(addr.Address[at:], ".") {
		return ""
	}
	return addr.Address[:at] + strings.ToLower(addr.Address[at:])
}

// normURL 补全scheme并校验URL结构，非法返回""
func normURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return ""
	}
	return s
}

// cleanShort 单行字段：规整空白并按词边界截断
func cleanShort(s string, maxLen int) string {
	return textutil.Shorten(textutil.Normalize(s), maxLen)
}

// cleanTextBlock 多行字段：允许换行但限制总长
func cleanTextBlock(s string) string {
	return textutil.Shorten(textutil.Normalize(s), maxTextBlock)
}

// cleanList 逐项清理+去重+截断条数
func cleanList(items []string, itemLen, maxItems int) []string {
	cleaned := make([]string, 0, len(items))
	for _, x := range items {
		if c := cleanShort(x, itemLen); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	cleaned = textutil.DedupeKeepOrder(cleaned)
	if len(cleaned) > maxItems {
		cleaned = cleaned[:maxItems]
	}
	return cleaned
}

// ToSchema 把内部记录转换为最终schema。输入不被修改；
// 输出的列表字段永不为nil，空列表补单条空占位。
// 电话用多信号投票出的地区作为无前缀号码的解析提示
func ToSchema(internal *types.InternalRecord) *types.InternalRecord {
	if internal == nil {
		internal = &types.InternalRecord{}
	}

	regionHint := locale.GuessRegion(internal).Alpha2
	if regionHint == "" {
		regionHint = "US"
	}

	out := &types.InternalRecord{}

	an := internal.Personal
	out.Personal = types.PersonalInfo{
		Name:          cleanShort(an.Name, 80),
		Surname:       cleanShort(an.Surname, 120),
		BirthDate:     cleanShort(an.BirthDate, 20),
		BirthPlace:    cleanShort(an.BirthPlace, 120),
		Nationality:   cleanShort(an.Nationality, 80),
		Sex:           cleanShort(an.Sex, 20),
		MaritalStatus: cleanShort(an.MaritalStatus, 40),
	}

	ct := internal.Contacts
	out.Contacts = types.ContactInfo{
		Address: types.Address{
			Street:     cleanShort(ct.Address.Street, 160),
			City:       cleanShort(ct.Address.City, 120),
			PostalCode: cleanShort(ct.Address.PostalCode, 12),
			Province:   cleanShort(ct.Address.Province, 80),
			Country:    locale.NormalizeCountry(ct.Address.Country),
		},
		Phone:    locale.FormatE164(ct.Phone, regionHint),
		Mobile:   locale.FormatE164(ct.Mobile, regionHint),
		Email:    normEmail(ct.Email),
		LinkedIn: normURL(ct.LinkedIn),
		Website:  normURL(ct.Website),
		GitHub:   normURL(ct.GitHub),
	}

	for _, it := range internal.Education {
		out.Education = append(out.Education, types.EducationEntry{
			Title:       cleanShort(it.Title, 200),
			Institution: cleanShort(it.Institution, 200),
			City:        cleanShort(it.City, 120),
			Country:     cleanShort(it.Country, 120),
			StartDate:   cleanShort(it.StartDate, 20),
			EndDate:     cleanShort(it.EndDate, 20),
			Grade:       cleanShort(it.Grade, 50),
			Description: cleanTextBlock(it.Description),
			Thesis:      cleanShort(it.Thesis, 280),
		})
	}
	if len(out.Education) == 0 {
		out.Education = []types.EducationEntry{types.EmptyEducationEntry()}
	}

	for _, it := range internal.Experience {
		out.Experience = append(out.Experience, types.ExperienceEntry{
			Position:         cleanShort(it.Position, 200),
			Company:          cleanShort(it.Company, 200),
			City:             cleanShort(it.City, 120),
			Country:          cleanShort(it.Country, 120),
			StartDate:        cleanShort(it.StartDate, 20),
			EndDate:          cleanShort(it.EndDate, 20),
			Description:      cleanTextBlock(it.Description),
			Responsibilities: cleanList(it.Responsibilities, 200, 30),
			Achievements:     cleanList(it.Achievements, 200, 30),
		})
	}
	if len(out.Experience) == 0 {
		out.Experience = []types.ExperienceEntry{types.EmptyExperienceEntry()}
	}

	sk := internal.Skills
	out.Skills = types.TechnicalSkills{
		ProgrammingLanguages: cleanList(sk.ProgrammingLanguages, 120, 50),
		Frameworks:           cleanList(sk.Frameworks, 120, 50),
		Databases:            cleanList(sk.Databases, 120, 50),
		Tools:                cleanList(sk.Tools, 120, 50),
		Methodologies:        cleanList(sk.Methodologies, 120, 50),
		Other:                cleanList(sk.Other, maxShort, 150),
	}

	for _, it := range internal.Languages {
		out.Languages = append(out.Languages, types.LanguageSkill{
			Language:       cleanShort(it.Language, 120),
			WrittenLevel:   cleanShort(it.WrittenLevel, 8),
			SpokenLevel:    cleanShort(it.SpokenLevel, 8),
			Certifications: cleanList(it.Certifications, 160, 20),
		})
	}
	if len(out.Languages) == 0 {
		out.Languages = []types.LanguageSkill{types.EmptyLanguageSkill()}
	}

	out.SoftSkills = cleanList(internal.SoftSkills, 160, 50)

	for _, it := range internal.Certifications {
		out.Certifications = append(out.Certifications, types.Certification{
			Name:      cleanShort(it.Name, 200),
			Issuer:    cleanShort(it.Issuer, 200),
			IssuedAt:  cleanShort(it.IssuedAt, 20),
			ExpiresAt: cleanShort(it.ExpiresAt, 20),
			Number:    cleanShort(it.Number, 80),
		})
	}
	if len(out.Certifications) == 0 {
		out.Certifications = []types.Certification{{}}
	}

	for _, it := range internal.Projects {
		out.Projects = append(out.Projects, types.Project{
			Name:         cleanShort(it.Name, 200),
			Description:  cleanTextBlock(it.Description),
			Role:         cleanShort(it.Role, 160),
			Technologies: cleanList(it.Technologies, 120, 40),
			Link:         normURL(it.Link),
		})
	}
	if len(out.Projects) == 0 {
		out.Projects = []types.Project{{Technologies: []string{}}}
	}

	for _, it := range internal.Publications {
		out.Publications = append(out.Publications, types.Publication{
			Title:   cleanShort(it.Title, 240),
			Authors: cleanList(it.Authors, 120, 20),
			Date:    cleanShort(it.Date, 20),
			Venue:   cleanShort(it.Venue, 200),
			Link:    normURL(it.Link),
		})
	}
	if len(out.Publications) == 0 {
		out.Publications = []types.Publication{{Authors: []string{}}}
	}

	out.Interests = cleanList(internal.Interests, 80, 30)
	out.Licences = cleanList(internal.Licences, 40, 10)
	out.Privacy = cleanTextBlock(internal.Privacy)

	disp := internal.Availability
	out.Availability = types.Availability{
		Travel:            cleanShort(disp.Travel, 80),
		Relocation:        cleanShort(disp.Relocation, 80),
		PreferredContract: cleanList(disp.PreferredContract, 60, 10),
	}

	// schema不携带解析元数据
	out.Meta = nil
	return out
}
