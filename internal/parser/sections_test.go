package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsHeading 标题形状判定
func TestIsHeading(t *testing.T) {
	assert.True(t, isHeading("ESPERIENZA LAVORATIVA"), "全大写行是标题")
	assert.True(t, isHeading("Work Experience"), "Title Case行是标题")
	assert.False(t, isHeading("Città:"), "以冒号结尾的标签行不是标题")
	assert.False(t, isHeading("mario@example.it"), "含@的行不是标题")
	assert.False(t, isHeading("https://example.it"), "含URL的行不是标题")
	assert.False(t, isHeading("CAP 20121 Milano"), "含长数字串的行不是标题")
	assert.False(t, isHeading("x"), "过短的行不是标题")
	assert.False(t, isHeading("Sviluppo di microservizi per il backend"), "普通句子不是标题")
}

// TestDetectSections 小节切分与隔离规则
func TestDetectSections(t *testing.T) {
	text := `MARIO ROSSI

ESPERIENZA LAVORATIVA

Software Engineer @ Acme
Milano
Gennaio 2020 - presente

ISTRUZIONE

Laurea in Informatica - Università di Milano
2015 - 2019`

	sections := DetectSections(text)
	require.Len(t, sections, 2, "MARIO ROSSI正文为空应被丢弃")

	assert.Equal(t, "ESPERIENZA LAVORATIVA", sections[0].Title)
	assert.Contains(t, sections[0].Body, "Software Engineer @ Acme")
	assert.Contains(t, sections[0].Body, "Milano", "段中孤行Milano不应被当作标题切走")

	assert.Equal(t, "ISTRUZIONE", sections[1].Title)
	assert.Contains(t, sections[1].Body, "Laurea in Informatica")
}

// TestDetectSectionsIsolation 标题必须与空行相邻
func TestDetectSectionsIsolation(t *testing.T) {
	// "Milano"有标题形状，但前后都不是空行
	text := `INTESTAZIONE

prima riga
Milano
ultima riga`
	sections := DetectSections(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "INTESTAZIONE", sections[0].Title)
	assert.Contains(t, sections[0].Body, "Milano")
}

// TestDetectSectionsNoHeadings 无标题时整篇成为单一body小节
func TestDetectSectionsNoHeadings(t *testing.T) {
	text := "solo testo senza struttura\nsu più righe"
	sections := DetectSections(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "body", sections[0].Title)
	assert.Contains(t, sections[0].Body, "solo testo")

	sections = DetectSections("")
	require.NotEmpty(t, sections, "结果永不为空")
}
