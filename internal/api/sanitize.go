package api

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// sanitizeText 去除全部 HTML 标签；bluemonday 会转义实体，这里还原成纯文本。
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeText(*s)
	return &clean
}

// validURL 接受空串、站内相对路径、http(s)/data 链接，以及上传资产的对象键。
// 对象键不会过期，前端通过 AssetObjectPath 解析。
func validURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if isValidAssetObjectKey(raw) {
		return true
	}
	if raw == "" || strings.HasPrefix(raw, "/") {
		return !strings.HasPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "data":
		return true
	default:
		return false
	}
}

func validURLPtr(raw *string) bool {
	return raw == nil || validURL(*raw)
}
