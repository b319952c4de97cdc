package handler

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/extractor"
)

// stubExtractor 固定输出的提取器
type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	return s.text, nil, s.err
}

func (s *stubExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, options interface{}) (string, map[string]interface{}, error) {
	return s.text, nil, s.err
}

func (s *stubExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, options interface{}) (string, map[string]interface{}, error) {
	return s.text, nil, s.err
}

const sampleCV = `MARIO BIANCHI

mario.bianchi@example.it
+39 02 1234567
Milano

ESPERIENZA LAVORATIVA

Software Engineer @ Acme S.p.A.
Gennaio 2020 - presente`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("percorso-inesistente.yaml")
	require.NoError(t, err)
	return cfg
}

// TestHandleParseLocal 本地模式走文本层提取器
func TestHandleParseLocal(t *testing.T) {
	cfg := testConfig(t)
	ocrCalled := false
	h := NewParseHandler(cfg, &stubExtractor{text: sampleCV}, func(language string) extractor.TextExtractor {
		ocrCalled = true
		return &stubExtractor{}
	})

	result, err := h.HandleParse(context.Background(), []byte("%PDF-finto"), "CV_Mario_Bianchi.pdf", "local", "")
	require.NoError(t, err)
	require.NotNil(t, result.Schema)

	assert.Equal(t, "Mario", result.Schema.Personal.Name)
	assert.Equal(t, "mario.bianchi@example.it", result.Schema.Contacts.Email)
	assert.Equal(t, "+39021234567", result.Schema.Contacts.Phone)
	assert.Greater(t, result.Scores.Core, 0.0)
	assert.False(t, ocrCalled, "本地模式不应触发OCR")
}

// TestHandleParseExternal 外部模式走OCR并传递请求语言
func TestHandleParseExternal(t *testing.T) {
	cfg := testConfig(t)
	var gotLanguage string
	h := NewParseHandler(cfg, &stubExtractor{err: errors.New("non usato")}, func(language string) extractor.TextExtractor {
		gotLanguage = language
		return &stubExtractor{text: sampleCV}
	})

	result, err := h.HandleParse(context.Background(), []byte("%PDF-finto"), "", "external", "eng")
	require.NoError(t, err)
	assert.Equal(t, "eng", gotLanguage)
	assert.Equal(t, "mario.bianchi@example.it", result.Schema.Contacts.Email)
}

// TestHandleParseExternalEmptyOCR OCR无输出要归类为ErrOCREmpty
func TestHandleParseExternalEmptyOCR(t *testing.T) {
	cfg := testConfig(t)
	h := NewParseHandler(cfg, nil, func(language string) extractor.TextExtractor {
		return &stubExtractor{text: "   "}
	})

	_, err := h.HandleParse(context.Background(), []byte("%PDF-finto"), "", "external", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOCREmpty))
}

// TestHandleParseAutoFallback auto模式在文本层过少时降级到OCR
func TestHandleParseAutoFallback(t *testing.T) {
	cfg := testConfig(t)
	ocrCalled := false
	h := NewParseHandler(cfg, &stubExtractor{text: "poco testo"}, func(language string) extractor.TextExtractor {
		ocrCalled = true
		return &stubExtractor{text: sampleCV}
	})

	result, err := h.HandleParse(context.Background(), []byte("%PDF-finto"), "", "auto", "")
	require.NoError(t, err)
	assert.True(t, ocrCalled, "文本层低于阈值应触发OCR降级")
	assert.Equal(t, "Mario", result.Schema.Personal.Name)
}

// TestHandleParseAutoKeepsLocal auto模式文本层足够时不触发OCR
func TestHandleParseAutoKeepsLocal(t *testing.T) {
	cfg := testConfig(t)
	ocrCalled := false
	h := NewParseHandler(cfg, &stubExtractor{text: sampleCV}, func(language string) extractor.TextExtractor {
		ocrCalled = true
		return &stubExtractor{}
	})

	_, err := h.HandleParse(context.Background(), []byte("%PDF-finto"), "", "auto", "")
	require.NoError(t, err)
	assert.False(t, ocrCalled)
}

// TestHandleParseLocalUnavailable 没有本地提取器时local模式报错
func TestHandleParseLocalUnavailable(t *testing.T) {
	cfg := testConfig(t)
	h := NewParseHandler(cfg, nil, func(language string) extractor.TextExtractor {
		return &stubExtractor{}
	})

	_, err := h.HandleParse(context.Background(), []byte("%PDF-finto"), "", "local", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocalUnavailable))
}

// TestHandleParseDefaultMode mode缺省等价于local
func TestHandleParseDefaultMode(t *testing.T) {
	cfg := testConfig(t)
	h := NewParseHandler(cfg, &stubExtractor{text: sampleCV}, func(language string) extractor.TextExtractor {
		return &stubExtractor{}
	})

	result, err := h.HandleParse(context.Background(), []byte("%PDF-finto"), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Mario", result.Schema.Personal.Name)
}
