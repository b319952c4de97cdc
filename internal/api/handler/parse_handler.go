package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/extractor"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/normalizer"
	"cv-parser-go/internal/parser"
	"cv-parser-go/internal/scoring"
	"cv-parser-go/internal/types"
)

// 解析模式
const (
	ModeLocal    = "local"    // 本地文本层提取（非扫描PDF更精确）
	ModeExternal = "external" // OCR.space远程识别（扫描件）
	ModeAuto     = "auto"     // 先本地，文本过少时降级到OCR
)

// 错误分类，由路由层映射到HTTP状态码
var (
	// ErrLocalUnavailable 本地提取器未初始化
	ErrLocalUnavailable = errors.New("本地PDF提取器不可用")
	// ErrExtractionFailed 本地文本层提取失败
	ErrExtractionFailed = errors.New("本地文本提取失败")
	// ErrOCREmpty OCR服务无输出（限流或PDF不可读）
	ErrOCREmpty = errors.New("OCR服务未返回文本")
)

// OCRFactory 按语言构造OCR提取器，便于测试注入
type OCRFactory func(language string) extractor.TextExtractor

// ParseHandler 解析请求处理器：提取 → 解析 → 归一化 → 评分
type ParseHandler struct {
	cfg        *config.Config
	local      extractor.TextExtractor
	ocrFactory OCRFactory
	cvParser   *parser.CVParser
}

// NewParseHandler 创建解析处理器。local可为nil（此时local/auto模式返回错误），
// ocrFactory为nil时使用配置构造真实的OCR.space客户端
func NewParseHandler(cfg *config.Config, local extractor.TextExtractor, ocrFactory OCRFactory) *ParseHandler {
	h := &ParseHandler{
		cfg:        cfg,
		local:      local,
		ocrFactory: ocrFactory,
		cvParser: parser.NewCVParser(
			parser.WithLayoutSignal(cfg.Parser.UseLayoutSignal),
		),
	}
	if h.ocrFactory == nil {
		h.ocrFactory = func(language string) extractor.TextExtractor {
			return extractor.NewOCRSpaceExtractor(
				cfg.OCR.EndpointURL,
				cfg.OCR.APIKey,
				extractor.WithOCRLanguage(language),
				extractor.WithOCREngine(cfg.OCR.Engine),
				extractor.WithOCRTimeout(cfg.OCRTimeout()),
			)
		}
	}
	return h
}

// ParseResult 一次解析的完整输出
type ParseResult struct {
	Schema *types.InternalRecord
	Scores scoring.Scores
}

// HandleParse 处理一次PDF解析请求。
// mode缺省为local；language为OCR语言码，缺省取配置
func (h *ParseHandler) HandleParse(ctx context.Context, pdfBytes []byte, filename, mode, language string) (*ParseResult, error) {
	startTime := time.Now()

	if mode == "" {
		mode = ModeLocal
	}
	if language == "" {
		language = h.cfg.OCR.DefaultLanguage
	}
	if filename == "" {
		filename = "cv.pdf"
	}

	text, err := h.extractText(ctx, pdfBytes, filename, mode, language)
	if err != nil {
		return nil, err
	}

	internal := h.cvParser.ParseTextToInternal(text, nil, filename)
	schema := normalizer.ToSchema(internal)
	sc := scoring.Compute(schema)

	logger.Info().
		Str("filename", filename).
		Str("mode", mode).
		Int("text_chars", len(text)).
		Float64("core_pct", sc.Core).
		Float64("global_pct", sc.Global).
		Dur("duration", time.Since(startTime)).
		Msg("简历解析完成")

	return &ParseResult{Schema: schema, Scores: sc}, nil
}

// extractText 按mode选择提取路径
func (h *ParseHandler) extractText(ctx context.Context, pdfBytes []byte, filename, mode, language string) (string, error) {
	switch mode {
	case ModeExternal:
		return h.ocrText(ctx, pdfBytes, filename, language)

	case ModeAuto:
		text, err := h.localText(ctx, pdfBytes, filename)
		if err == nil && len(strings.TrimSpace(text)) >= h.cfg.Parser.MinTextChars {
			return text, nil
		}
		logger.Info().
			Str("filename", filename).
			Int("text_chars", len(strings.TrimSpace(text))).
			Msg("文本层不足，降级到OCR")
		return h.ocrText(ctx, pdfBytes, filename, language)

	default:
		return h.localText(ctx, pdfBytes, filename)
	}
}

func (h *ParseHandler) localText(ctx context.Context, pdfBytes []byte, filename string) (string, error) {
	if h.local == nil {
		return "", ErrLocalUnavailable
	}
	text, _, err := h.local.ExtractTextFromBytes(ctx, pdfBytes, filename, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return text, nil
}

func (h *ParseHandler) ocrText(ctx context.Context, pdfBytes []byte, filename, language string) (string, error) {
	ocr := h.ocrFactory(language)
	text, _, err := ocr.ExtractTextFromBytes(ctx, pdfBytes, filename, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCREmpty, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrOCREmpty
	}
	return text, nil
}
