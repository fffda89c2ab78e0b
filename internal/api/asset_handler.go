package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolioCMS/internal/api/middleware"
	"portfolioCMS/internal/storage"
)

const (
	assetKeyPrefix = "assets/"
	assetURLTTL    = 7 * 24 * time.Hour
	assetLinkTTL   = 15 * time.Minute
	sniffLen       = 512

	// AssetObjectPath 是资产的稳定地址，每次访问时重定向到新签发的链接。
	AssetObjectPath = "/v1/portfolio/assets/object"
)

var errMaliciousFile = errors.New("malicious file detected")

// 允许上传的类型及其对象扩展名，以内容嗅探结果为准。
var assetTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

type assetStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*storage.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
}

type virusScanner interface {
	Scan(r io.Reader) error
}

type clamdScanner struct {
	addr string
}

func (s clamdScanner) Scan(r io.Reader) error {
	abort := make(chan bool)
	defer close(abort)

	results, err := clamd.NewClamd(s.addr).ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}
	var scanErr error
	for result := range results {
		if result.Status != clamd.RES_OK && scanErr == nil {
			scanErr = errMaliciousFile
		}
	}
	return scanErr
}

// AssetHandler 负责管理端图片与 PDF 上传，以及公开的临时访问链接。
type AssetHandler struct {
	Storage  assetStorage
	Scanner  virusScanner
	Logger   *slog.Logger
	MaxBytes int64
}

// NewAssetHandler 返回 AssetHandler 实例。clamdAddr 为空时跳过病毒扫描。
func NewAssetHandler(storageClient assetStorage, logger *slog.Logger, clamdAddr string, maxBytes int64) *AssetHandler {
	h := &AssetHandler{
		Storage:  storageClient,
		Logger:   logger,
		MaxBytes: maxBytes,
	}
	if strings.TrimSpace(clamdAddr) != "" {
		h.Scanner = clamdScanner{addr: clamdAddr}
	}
	return h
}

// UploadAsset 处理受保护的上传，并在上传前扫描病毒。
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	if h.Storage == nil {
		Unavailable(c, "object storage is not configured")
		return
	}
	logger := middleware.LoggerFromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if h.MaxBytes > 0 && file.Size > h.MaxBytes {
		Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	head := make([]byte, sniffLen)
	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	n, _ := io.ReadFull(reader, head)
	reader.Close()

	contentType := http.DetectContentType(head[:n])
	ext, ok := assetTypes[contentType]
	if !ok {
		Error(c, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}

	if h.Scanner != nil {
		reader, err = file.Open()
		if err != nil {
			Internal(c, "failed to open file")
			return
		}
		err = h.Scanner.Scan(reader)
		reader.Close()
		if errors.Is(err, errMaliciousFile) {
			logger.Warn("malicious upload rejected", slog.String("filename", file.Filename))
			BadRequest(c, "malicious file detected")
			return
		}
		if err != nil {
			logger.Error("scan file", slog.Any("error", err))
			Internal(c, "failed to scan file")
			return
		}
	}

	reader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return
	}
	defer reader.Close()

	kind := "images"
	if contentType == "application/pdf" {
		kind = "documents"
	}
	objectKey := fmt.Sprintf("%s%s/%s%s", assetKeyPrefix, kind, uuid.NewString(), ext)

	if _, err := h.Storage.UploadFile(c.Request.Context(), objectKey, reader, file.Size, contentType); err != nil {
		logger.Error("upload file", slog.Any("error", err))
		Internal(c, "failed to upload file")
		return
	}

	url, err := h.Storage.GeneratePresignedURL(c.Request.Context(), objectKey, assetURLTTL)
	if err != nil {
		logger.Error("generate presigned url", slog.Any("error", err))
		Internal(c, "failed to generate url")
		return
	}

	logger.Info("asset uploaded", slog.String("object_key", objectKey), slog.String("content_type", contentType))
	// url 会过期，写入内容时应使用 objectKey 或 path。
	c.JSON(http.StatusCreated, gin.H{
		"objectKey": objectKey,
		"path":      assetObjectLink(objectKey),
		"url":       url,
	})
}

func assetObjectLink(objectKey string) string {
	return AssetObjectPath + "?key=" + neturl.QueryEscape(objectKey)
}

// presign 校验对象键并签发短期链接；失败时已写入响应。
func (h *AssetHandler) presign(c *gin.Context) (string, bool) {
	if h.Storage == nil {
		Unavailable(c, "object storage is not configured")
		return "", false
	}
	objectKey := c.Query("key")
	if objectKey == "" {
		BadRequest(c, "missing key")
		return "", false
	}
	if !isValidAssetObjectKey(objectKey) {
		Forbidden(c, "access denied")
		return "", false
	}

	signedURL, err := h.Storage.GeneratePresignedURL(c.Request.Context(), objectKey, assetLinkTTL)
	if err != nil {
		middleware.LoggerFromContext(c).Error("generate presigned url", slog.Any("error", err))
		Internal(c, "failed to generate url")
		return "", false
	}
	return signedURL, true
}

// GetAssetURL 返回资产的临时预签名 URL。
func (h *AssetHandler) GetAssetURL(c *gin.Context) {
	if signedURL, ok := h.presign(c); ok {
		c.JSON(http.StatusOK, gin.H{"url": signedURL})
	}
}

// RedirectAsset 将稳定地址重定向到新签发的链接，可直接用作 img/a 的地址。
func (h *AssetHandler) RedirectAsset(c *gin.Context) {
	if signedURL, ok := h.presign(c); ok {
		c.Header("Cache-Control", "no-store")
		c.Redirect(http.StatusFound, signedURL)
	}
}

func isValidAssetObjectKey(key string) bool {
	if key == "" || !utf8.ValidString(key) || len(key) > 200 {
		return false
	}
	if !strings.HasPrefix(key, assetKeyPrefix+"images/") && !strings.HasPrefix(key, assetKeyPrefix+"documents/") {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	lower := strings.ToLower(key)
	for _, ext := range assetTypes {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
