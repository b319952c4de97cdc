package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 一份典型意大利简历的端到端解析
func TestParseTextToInternal(t *testing.T) {
	text := `MARIO BIANCHI

mario.bianchi@example.it
+39 02 1234567
Via Roma 10, 20121 Milano
Milano
Italia

ESPERIENZA LAVORATIVA

Software Engineer @ Acme S.p.A.
Milano
Gennaio 2020 - presente
Sviluppo di microservizi in Go.

ISTRUZIONE

Laurea in Informatica - Università di Milano
2015 - 2019

COMPETENZE

go, python, docker, kubernetes

LINGUE

Italiano C2 madrelingua
Inglese B2 scolastico

Autorizzo il trattamento dei dati personali ai sensi del GDPR.`

	p := NewCVParser()
	rec := p.ParseTextToInternal(text, nil, "CV_Mario_Bianchi_2023.pdf")
	require.NotNil(t, rec)

	// 姓名：email与文件名共识
	assert.Equal(t, "Mario", rec.Personal.Name)
	assert.Equal(t, "Bianchi", rec.Personal.Surname)

	// 联系区
	assert.Equal(t, "mario.bianchi@example.it", rec.Contacts.Email)
	assert.Equal(t, "+39021234567", rec.Contacts.Phone)
	assert.Equal(t, "Italy", rec.Contacts.Address.Country)
	assert.Equal(t, "Milano", rec.Contacts.Address.City)
	assert.Equal(t, "20121", rec.Contacts.Address.PostalCode)
	assert.Equal(t, "Via Roma 10, 20121 Milano", rec.Contacts.Address.Street)

	// 工作经历
	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Software Engineer", rec.Experience[0].Position)
	assert.Equal(t, "Acme S.p.A.", rec.Experience[0].Company)
	assert.Equal(t, "Milano", rec.Experience[0].City)
	assert.Equal(t, "2020-01-01", rec.Experience[0].StartDate)
	assert.Equal(t, "", rec.Experience[0].EndDate)

	// 教育经历
	require.Len(t, rec.Education, 1)
	assert.Equal(t, "Laurea in Informatica", rec.Education[0].Title)
	assert.Equal(t, "Università di Milano", rec.Education[0].Institution)
	assert.Equal(t, "2015-01-01", rec.Education[0].StartDate)
	assert.Equal(t, "2019-01-01", rec.Education[0].EndDate)

	// 技能与语言
	assert.Equal(t, []string{"go", "python", "docker", "kubernetes"}, rec.Skills.Other)
	require.Len(t, rec.Languages, 2)
	assert.Equal(t, "Italiano", rec.Languages[0].Language)
	assert.Equal(t, "C2", rec.Languages[0].WrittenLevel)
	assert.Equal(t, "Inglese", rec.Languages[1].Language)
	assert.Equal(t, "B2", rec.Languages[1].SpokenLevel)

	// 隐私声明
	assert.Equal(t, "Autorizzo il trattamento dei dati personali ai sensi del GDPR", rec.Privacy)

	// 元信息：小节标题按文档顺序记录
	require.NotNil(t, rec.Meta)
	assert.Equal(t,
		[]string{"MARIO BIANCHI", "ESPERIENZA LAVORATIVA", "ISTRUZIONE", "COMPETENZE", "LINGUE"},
		rec.Meta.SectionTitles)
}

// 简历没有语言小节时，语言列表必须是单条空占位：
// 其他小节里的短大写行（姓名、城市、标题、日期）不是语言
func TestParseTextToInternalNoLanguageSection(t *testing.T) {
	text := `MARIO BIANCHI

mario.bianchi@example.it
+39 02 1234567
Milano

ESPERIENZA LAVORATIVA

Software Engineer @ Acme S.p.A.
Gennaio 2020 - presente`

	p := NewCVParser()
	rec := p.ParseTextToInternal(text, nil, "CV_Mario_Bianchi_2023.pdf")

	require.Len(t, rec.Languages, 1)
	assert.Equal(t, "", rec.Languages[0].Language)
	assert.Equal(t, "", rec.Languages[0].WrittenLevel)
}

// 空输入也必须产出合法记录：列表字段占位且非nil
func TestParseTextToInternalEmpty(t *testing.T) {
	p := NewCVParser()
	rec := p.ParseTextToInternal("", nil, "")
	require.NotNil(t, rec)

	assert.Equal(t, "", rec.Personal.Name)
	assert.Equal(t, "", rec.Contacts.Email)

	require.Len(t, rec.Experience, 1, "空输入时给单条占位")
	assert.Equal(t, "", rec.Experience[0].Position)
	require.Len(t, rec.Education, 1)
	require.Len(t, rec.Languages, 1)

	assert.NotNil(t, rec.Skills.Other)
	assert.NotNil(t, rec.SoftSkills)
	assert.NotNil(t, rec.Certifications)
	assert.NotNil(t, rec.Projects)
	assert.NotNil(t, rec.Publications)
	assert.NotNil(t, rec.Interests)
	assert.NotNil(t, rec.Licences)
	assert.NotNil(t, rec.Availability.PreferredContract)
}
