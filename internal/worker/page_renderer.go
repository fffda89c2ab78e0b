package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// 作品集页面在客户端渲染完成后插入该元素。
const printReadySelector = "#portfolio-print-ready"

const printCSS = `
  nextjs-portal,
  #__next-build-watcher,
  [data-nextjs-devtools] {
    display: none !important;
  }
  @media print {
    * {
      -webkit-print-color-adjust: exact !important;
      print-color-adjust: exact !important;
    }
    @page {
      size: A4;
      margin: 0;
    }
  }
`

// RenderPrintPage 使用无头 Chromium 打开 targetURL 并导出 A4 PDF。
func RenderPrintPage(ctx context.Context, logger *slog.Logger, targetURL string) (_ []byte, err error) {
	logger.Info("navigating to frontend print page", slog.String("url", targetURL))

	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	defer launch.Cleanup()

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Context(ctx).Timeout(90 * time.Second)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: targetURL})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait page load: %w", err)
	}

	// 旧版前端没有就绪标记，超时后按页面已加载处理。
	if _, err := page.Timeout(30 * time.Second).Element(printReadySelector); err != nil {
		logger.Warn("print ready marker not found, continue", slog.Any("error", err))
	}

	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return nil, fmt.Errorf("set emulated media to print: %w", err)
	}
	if err := page.AddStyleTag("", printCSS); err != nil {
		return nil, fmt.Errorf("inject print css: %w", err)
	}
	if err := page.WaitIdle(10 * time.Second); err != nil {
		logger.Warn("page did not become idle, continue", slog.Any("error", err))
	}

	return exportPDF(page)
}

func exportPDF(page *rod.Page) ([]byte, error) {
	params := &proto.PagePrintToPDF{
		PrintBackground:   true,
		PaperWidth:        float64Ptr(8.27),
		PaperHeight:       float64Ptr(11.69),
		MarginTop:         float64Ptr(0),
		MarginBottom:      float64Ptr(0),
		MarginLeft:        float64Ptr(0),
		MarginRight:       float64Ptr(0),
		PreferCSSPageSize: true,
	}
	reader, err := page.PDF(params)
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}

func float64Ptr(value float64) *float64 {
	return &value
}
