package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-parser-go/internal/types"
)

// TestNormEmail email校验：非法值归空，域名小写
func TestNormEmail(t *testing.T) {
	assert.Equal(t, "mario.rossi@example.it", normEmail("mario.rossi@example.it"))
	assert.Equal(t, "Mario@example.it", normEmail(" Mario@EXAMPLE.IT "), "local-part保留大小写，域名小写")
	assert.Equal(t, "", normEmail("non-una-email"))
	assert.Equal(t, "", normEmail("user@localhost"), "域名必须带点")
	assert.Equal(t, "", normEmail(""))
}

// TestNormURL URL校验与scheme补全
func TestNormURL(t *testing.T) {
	assert.Equal(t, "https://example.it/cv", normURL("example.it/cv"), "裸域名补https://")
	assert.Equal(t, "http://example.it", normURL("http://example.it"), "已有scheme保持不动")
	assert.Equal(t, "", normURL("solo parole"), "host必须带点")
	assert.Equal(t, "", normURL(""))
}

// TestCleanList 清理+去重+截断条数，永不返回nil
func TestCleanList(t *testing.T) {
	got := cleanList([]string{" Go ", "Go", "", "Python"}, 120, 50)
	assert.Equal(t, []string{"Go", "Python"}, got)

	got = cleanList([]string{"a", "b", "c"}, 120, 2)
	assert.Equal(t, []string{"a", "b"}, got, "超出条数上限截断")

	assert.NotNil(t, cleanList(nil, 120, 50))
}

// TestToSchemaContacts 联系方式的格式化：电话E.164、email、URL
func TestToSchemaContacts(t *testing.T) {
	internal := &types.InternalRecord{}
	internal.Contacts.Email = "mario.bianchi@example.it"
	internal.Contacts.Phone = "+39 02 1234567"
	internal.Contacts.Mobile = "333 1234567"
	internal.Contacts.LinkedIn = "www.linkedin.com/in/mario-bianchi"
	internal.Contacts.Address.Country = "IT"

	out := ToSchema(internal)
	assert.Equal(t, "+39021234567", out.Contacts.Phone)
	assert.Equal(t, "+393331234567", out.Contacts.Mobile, "无前缀号码用投票出的地区解析")
	assert.Equal(t, "mario.bianchi@example.it", out.Contacts.Email)
	assert.Equal(t, "https://www.linkedin.com/in/mario-bianchi", out.Contacts.LinkedIn)
	assert.Equal(t, "Italy", out.Contacts.Address.Country, "国家统一成英文短名")
}

// TestToSchemaTruncation 超长字段按词边界截断
func TestToSchemaTruncation(t *testing.T) {
	internal := &types.InternalRecord{}
	internal.Personal.Name = strings.Repeat("abcde ", 30)

	out := ToSchema(internal)
	assert.LessOrEqual(t, len([]rune(out.Personal.Name)), 80)
	assert.True(t, strings.HasSuffix(out.Personal.Name, "…"), "截断时带省略号")
}

// TestToSchemaPlaceholders 空记录产出占位条目且列表非nil
func TestToSchemaPlaceholders(t *testing.T) {
	out := ToSchema(&types.InternalRecord{})

	require.Len(t, out.Education, 1)
	assert.Equal(t, "", out.Education[0].Title)
	require.Len(t, out.Experience, 1)
	require.Len(t, out.Languages, 1)
	require.Len(t, out.Certifications, 1)
	require.Len(t, out.Projects, 1)
	assert.NotNil(t, out.Projects[0].Technologies)
	require.Len(t, out.Publications, 1)
	assert.NotNil(t, out.Publications[0].Authors)

	assert.NotNil(t, out.Skills.Other)
	assert.NotNil(t, out.SoftSkills)
	assert.NotNil(t, out.Interests)
	assert.NotNil(t, out.Licences)
	assert.NotNil(t, out.Availability.PreferredContract)
}

// TestToSchemaNilInput nil输入等价于空记录
func TestToSchemaNilInput(t *testing.T) {
	out := ToSchema(nil)
	require.NotNil(t, out)
	require.Len(t, out.Experience, 1)
}

// TestToSchemaMetaDropped schema不携带解析元数据
func TestToSchemaMetaDropped(t *testing.T) {
	internal := &types.InternalRecord{Meta: &types.Meta{SectionTitles: []string{"X"}}}
	out := ToSchema(internal)
	assert.Nil(t, out.Meta)
}
