package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"cv-parser-go/internal/api/handler"
	"cv-parser-go/internal/logger"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, parseHandler *handler.ParseHandler) {
	api := h.Group("/api/v1")

	api.POST("/parse", func(c context.Context, ctx *app.RequestContext) {
		requestID := uuid.NewString()
		ctx.Header("X-Request-ID", requestID)

		// 获取上传的文件
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		// 只接受PDF
		contentType := fileHeader.Header.Get("Content-Type")
		if contentType != "" && !strings.Contains(contentType, "application/pdf") {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请上传PDF (Content-Type: application/pdf)"})
			return
		}

		mode := ctx.PostForm("mode")
		language := ctx.PostForm("language")

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		pdfBytes, err := io.ReadAll(file)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		result, err := parseHandler.HandleParse(c, pdfBytes, fileHeader.Filename, mode, language)
		if err != nil {
			status := consts.StatusInternalServerError
			if errors.Is(err, handler.ErrOCREmpty) {
				status = consts.StatusBadGateway
			}
			logger.Error().
				Err(err).
				Str("request_id", requestID).
				Str("filename", fileHeader.Filename).
				Str("mode", mode).
				Msg("解析请求失败")
			ctx.JSON(status, utils.H{"error": err.Error()})
			return
		}

		// 评分放在响应头，schema本体不携带百分比
		ctx.Header("X-Completion-Core", fmt.Sprintf("%.1f", result.Scores.Core))
		ctx.Header("X-Completion-Global", fmt.Sprintf("%.1f", result.Scores.Global))
		ctx.JSON(consts.StatusOK, utils.H{"schema": result.Schema})
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
