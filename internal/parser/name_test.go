package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cv-parser-go/internal/types"
)

// TestInferNameConsensus 多信号重合时采用共识（取最短变体）
func TestInferNameConsensus(t *testing.T) {
	p := NewCVParser()
	nome, cognome := p.InferName(nil,
		"anna.rossi@example.com",
		"https://www.linkedin.com/in/anna-maria-rossi",
		"")
	assert.Equal(t, "Anna", nome)
	assert.Equal(t, "Rossi", cognome, "共识组内应取最短的token变体")
}

// TestInferNameFilenameFallback 只有文件名信号时的回退
func TestInferNameFilenameFallback(t *testing.T) {
	p := NewCVParser()
	nome, cognome := p.InferName(nil, "", "", "CV_Mario_Bianchi_2023.pdf")
	assert.Equal(t, "Mario", nome, "应剔除cv前缀和年份token")
	assert.Equal(t, "Bianchi", cognome)
}

// TestInferNamePriority 无共识时按linkedin > email > filename优先
func TestInferNamePriority(t *testing.T) {
	p := NewCVParser()
	nome, cognome := p.InferName(nil,
		"luca.verdi@example.com",
		"https://linkedin.com/in/paolo-neri",
		"")
	assert.Equal(t, "Paolo", nome, "linkedin优先于email")
	assert.Equal(t, "Neri", cognome)
}

// TestInferNameNoSignals 无可用信号返回空
func TestInferNameNoSignals(t *testing.T) {
	p := NewCVParser()
	nome, cognome := p.InferName(nil, "info@company.com", "", "resume.pdf")
	assert.Equal(t, "", nome, "单token的邮箱local-part不像人名")
	assert.Equal(t, "", cognome)
}

// TestInferNameLayoutSignal 版面信号启用时优先取页面顶部的姓名块
func TestInferNameLayoutSignal(t *testing.T) {
	blocks := []types.LayoutBlock{
		{Page: 0, Y0: 400, X0: 50, X1: 200, Text: "Sezione Contatti"},
		{Page: 0, Y0: 20, X0: 50, X1: 300, Text: "Anna Rossi"},
	}

	p := NewCVParser(WithLayoutSignal(true))
	nome, cognome := p.InferName(blocks, "altro.nome@example.com", "", "")
	assert.Equal(t, "Anna", nome, "版面候选优先于其他信号")
	assert.Equal(t, "Rossi", cognome)

	// 未启用时忽略版面块
	p = NewCVParser()
	nome, _ = p.InferName(blocks, "", "", "")
	assert.Equal(t, "", nome)
}

// TestEquivalentTokens 包含式等价
func TestEquivalentTokens(t *testing.T) {
	assert.True(t, equivalentTokens([]string{"anna", "rossi"}, []string{"Anna", "Maria", "Rossi"}))
	assert.True(t, equivalentTokens([]string{"Rossì", "Anna"}, []string{"anna", "rossi"}), "音标和顺序不敏感")
	assert.False(t, equivalentTokens([]string{"anna", "rossi"}, []string{"anna", "verdi"}))
	assert.False(t, equivalentTokens(nil, []string{"anna"}))
}
