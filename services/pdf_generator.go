package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"lawyer_tools/services/i18n"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// pdfTimeout bounds a single headless Chrome render
const pdfTimeout = 30 * time.Second

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	ChromePath      string // empty uses the chromedp lookup
	PageOrientation string // portrait, landscape
	PageSize        string // A4, letter
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns A4 portrait with 2cm margins
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		PageSize:        "A4",
		MarginTop:       57,
		MarginBottom:    57,
		MarginLeft:      57,
		MarginRight:     57,
	}
}

func paperSize(options PDFOptions) (width, height float64) {
	switch options.PageSize {
	case "letter":
		width, height = 8.5, 11.0
	default: // A4
		width, height = 8.27, 11.69
	}
	if options.PageOrientation == "landscape" {
		width, height = height, width
	}
	return width, height
}

// GeneratePDF renders HTML content to PDF using headless Chrome
func GeneratePDF(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if options.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(options.ChromePath))
	}

	ctx, timeoutCancel := context.WithTimeout(ctx, pdfTimeout)
	defer timeoutCancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	paperWidth, paperHeight := paperSize(options)

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(float64(options.MarginTop) / 72.0).
				WithMarginBottom(float64(options.MarginBottom) / 72.0).
				WithMarginLeft(float64(options.MarginLeft) / 72.0).
				WithMarginRight(float64(options.MarginRight) / 72.0).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// WrapHTMLForPDF wraps report content in a printable document
func WrapHTMLForPDF(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Helvetica, Arial, sans-serif;
            font-size: 11pt;
            line-height: 1.5;
            color: #111;
        }
        h1 { font-size: 18pt; margin-bottom: 18pt; }
        table { border-collapse: collapse; width: 100%; margin: 12pt 0; }
        td { border-bottom: 1px solid #ddd; padding: 6pt 4pt; }
        td.label { color: #555; width: 40%; }
        .result { font-size: 14pt; font-weight: bold; }
        .footer { margin-top: 36pt; font-size: 8pt; color: #777; }
    </style>
</head>
<body>
` + content + `
</body>
</html>`
}

// DateDeltaReport is the content of the DateDelta confirmation PDF
type DateDeltaReport struct {
	Start       Date
	End         Date
	Days        int
	GeneratedAt time.Time
	UserName    string
}

var dateDeltaReportTemplate = template.Must(template.New("datedelta").Parse(`<h1>{{.Title}}</h1>
<table>
  <tr><td class="label">{{.StartLabel}}</td><td>{{.Start}}</td></tr>
  <tr><td class="label">{{.EndLabel}}</td><td>{{.End}}</td></tr>
  <tr><td class="label">{{.ResultLabel}}</td><td class="result">{{.Days}}</td></tr>
</table>
<p class="footer">{{.Footer}}</p>`))

// RenderDateDeltaReport renders the report body in the context's language
func RenderDateDeltaReport(ctx context.Context, r DateDeltaReport) (string, error) {
	generatedAt := r.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	var footer string
	if r.UserName != "" {
		footer = i18n.T(ctx, "datedelta.pdf.footer_user", map[string]interface{}{
			"time": generatedAt.Format("02.01.2006 15:04"),
			"user": r.UserName,
		})
	} else {
		footer = i18n.T(ctx, "datedelta.pdf.footer", map[string]interface{}{
			"time": generatedAt.Format("02.01.2006 15:04"),
		})
	}

	data := map[string]interface{}{
		"Title":       i18n.T(ctx, "datedelta.pdf.title"),
		"StartLabel":  i18n.T(ctx, "datedelta.form.start"),
		"EndLabel":    i18n.T(ctx, "datedelta.form.end"),
		"ResultLabel": i18n.T(ctx, "datedelta.pdf.result"),
		"Start":       r.Start.String(),
		"End":         r.End.String(),
		"Days":        r.Days,
		"Footer":      footer,
	}

	var buf bytes.Buffer
	if err := dateDeltaReportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render date delta report: %w", err)
	}
	return WrapHTMLForPDF(buf.String()), nil
}
