// Package extractor 是提取层：把上传的PDF变成原始文本。
// 两条路径：本地文本层提取（eino PDF parser）和OCR.space远程识别，
// 由上层按mode选择或自动降级。
package extractor

import (
	"context"
	"io"
)

// TextExtractor PDF文本提取器接口
type TextExtractor interface {
	// ExtractFromFile 从PDF文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)

	// ExtractTextFromReader 从io.Reader提取文本和元数据
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, options interface{}) (string, map[string]interface{}, error)

	// ExtractTextFromBytes 从字节数组提取文本和元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string, options interface{}) (string, map[string]interface{}, error)
}
