package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cv-parser-go/internal/logger"
)

// DefaultOCRSpaceURL OCR.space解析端点
const DefaultOCRSpaceURL = "https://api.ocr.space/parse/image"

// OCRSpaceExtractor 基于OCR.space REST API的提取器，扫描版PDF的降级路径。
// 免费档限制：文件≤1MB、≤3页；超限时服务端直接报错
type OCRSpaceExtractor struct {
	// 解析端点，例如 https://api.ocr.space/parse/image
	EndpointURL string
	// API密钥
	APIKey string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// OCR语言代码（OCR.space三字母码，如 ita / eng）
	language string
	// OCR引擎编号，引擎2对拉丁文字的版面还原更好
	engine int
}

// OCRSpaceOption 定义配置选项函数
type OCRSpaceOption func(*OCRSpaceExtractor)

// WithOCRLanguage 配置OCR语言（OCR.space三字母码）
func WithOCRLanguage(lang string) OCRSpaceOption {
	return func(e *OCRSpaceExtractor) {
		if lang != "" {
			e.language = lang
		}
	}
}

// WithOCREngine 配置OCR引擎编号
func WithOCREngine(engine int) OCRSpaceOption {
	return func(e *OCRSpaceExtractor) {
		e.engine = engine
	}
}

// WithOCRTimeout 配置HTTP客户端超时时间
func WithOCRTimeout(timeout time.Duration) OCRSpaceOption {
	return func(e *OCRSpaceExtractor) {
		e.Client.Timeout = timeout
	}
}

var _ TextExtractor = (*OCRSpaceExtractor)(nil)

// NewOCRSpaceExtractor 创建OCR.space提取器
func NewOCRSpaceExtractor(endpointURL, apiKey string, options ...OCRSpaceOption) *OCRSpaceExtractor {
	if endpointURL == "" {
		endpointURL = DefaultOCRSpaceURL
	}
	extractor := &OCRSpaceExtractor{
		EndpointURL: endpointURL,
		APIKey:      apiKey,
		Client:      &http.Client{Timeout: 60 * time.Second},
		language:    "ita",
		engine:      2,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// ocrSpaceResponse OCR.space响应体。ErrorMessage可能是字符串或字符串数组
type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText        string `json:"ParsedText"`
		FileParseExitCode int    `json:"FileParseExitCode"`
	} `json:"ParsedResults"`
	OCRExitCode           int         `json:"OCRExitCode"`
	IsErroredOnProcessing bool        `json:"IsErroredOnProcessing"`
	ErrorMessage          interface{} `json:"ErrorMessage"`
}

// ExtractFromFile 从PDF文件提取文本和元数据
func (e *OCRSpaceExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("读取PDF文件 %s 失败: %w", filePath, err)
	}
	return e.ExtractTextFromBytes(ctx, data, filepath.Base(filePath), nil)
}

// ExtractTextFromReader 从io.Reader提取文本和元数据
func (e *OCRSpaceExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, options interface{}) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("读取PDF内容失败: %w", err)
	}
	return e.ExtractTextFromBytes(ctx, data, uri, options)
}

// ExtractTextFromBytes 把PDF字节上传到OCR.space并合并所有页的识别文本
func (e *OCRSpaceExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, options interface{}) (string, map[string]interface{}, error) {
	startTime := time.Now()

	metadata := map[string]interface{}{
		"extraction_time":  time.Now().Format(time.RFC3339),
		"source_file_path": uri,
		"ocr_language":     e.language,
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"language":          e.language,
		"isOverlayRequired": "false",
		"scale":             "true",
		"OCREngine":         fmt.Sprintf("%d", e.engine),
		"filetype":          "PDF",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return "", metadata, fmt.Errorf("构建multipart请求失败: %w", err)
		}
	}

	name := uri
	if name == "" {
		name = "document.pdf"
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", metadata, fmt.Errorf("构建multipart请求失败: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", metadata, fmt.Errorf("写入PDF内容失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", metadata, fmt.Errorf("构建multipart请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.EndpointURL, &body)
	if err != nil {
		return "", metadata, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("apikey", e.APIKey)

	resp, err := e.Client.Do(req)
	if err != nil {
		return "", metadata, fmt.Errorf("发送请求到OCR服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", metadata, fmt.Errorf("OCR服务返回错误状态码: %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", metadata, fmt.Errorf("读取OCR响应失败: %w", err)
	}

	var parsed ocrSpaceResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", metadata, fmt.Errorf("解析OCR响应JSON失败: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", metadata, fmt.Errorf("OCR处理失败 (exit code %d): %v", parsed.OCRExitCode, parsed.ErrorMessage)
	}

	var pages []string
	for _, r := range parsed.ParsedResults {
		if t := strings.TrimSpace(r.ParsedText); t != "" {
			pages = append(pages, r.ParsedText)
		}
	}
	text := strings.Join(pages, "\n\n")

	duration := time.Since(startTime)
	metadata["processing_duration_ms"] = duration.Milliseconds()
	metadata["page_count"] = len(parsed.ParsedResults)
	metadata["text_length"] = len(text)

	logger.Debug().Str("uri", uri).Int("chars", len(text)).Int("pages", len(parsed.ParsedResults)).
		Dur("duration", duration).Msg("OCR提取完成")
	return text, metadata, nil
}
