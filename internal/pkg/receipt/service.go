package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/checkout"
)

// Service renders order receipts. HTML rendering always works; PDF requires
// the wkhtmltopdf binary on the host and is offered separately.
type Service struct {
	config *config.Config
}

// NewService creates a receipt service.
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// receiptData is the data passed to the receipt template.
type receiptData struct {
	StoreName     string
	ReceiptNumber string
	ReceiptDate   string
	OrderNumber   string
	Confirmation  checkout.Confirmation
	Subtotal      string
	ShippingCost  string
	Discount      string
	Total         string
}

// GenerateHTML renders the receipt for a placed order as HTML.
func (s *Service) GenerateHTML(confirmation checkout.Confirmation) (string, error) {
	data := receiptData{
		StoreName:     s.config.App.Name,
		ReceiptNumber: fmt.Sprintf("RCPT-%d", confirmation.Order.ID),
		ReceiptDate:   time.Now().Format("January 2, 2006"),
		OrderNumber:   confirmation.Order.OrderNumber,
		Confirmation:  confirmation,
		Subtotal:      confirmation.Totals.Subtotal.StringFixed(2),
		ShippingCost:  confirmation.Totals.ShippingCost.StringFixed(2),
		Discount:      confirmation.Totals.Discount.StringFixed(2),
		Total:         confirmation.Totals.Total.StringFixed(2),
	}

	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute receipt template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the receipt as a PDF.
func (s *Service) GeneratePDF(confirmation checkout.Confirmation) (*bytes.Buffer, error) {
	htmlContent, err := s.GenerateHTML(confirmation)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 20px; }
  .meta { color: #666; font-size: 12px; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; font-size: 13px; }
  .totals td { border: none; padding: 4px 8px; }
  .totals .label { color: #666; }
  .totals .grand { font-weight: bold; border-top: 1px solid #222; }
</style>
</head>
<body>
  <h1>{{.StoreName}} Order Receipt</h1>
  <div class="meta">
    Receipt {{.ReceiptNumber}} / Order {{.OrderNumber}} / {{.ReceiptDate}}
  </div>

  <table>
    <tr><th>Product</th><th>Quantity</th></tr>
    {{range .Confirmation.Order.Products}}
    <tr><td>#{{.ProductID}} {{.Detail}}</td><td>{{.Count}}</td></tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td class="label">Subtotal</td><td>${{.Subtotal}}</td></tr>
    <tr><td class="label">Shipping</td><td>${{.ShippingCost}}</td></tr>
    <tr><td class="label">Discount</td><td>-${{.Discount}}</td></tr>
    <tr class="grand"><td>Total</td><td>${{.Total}}</td></tr>
  </table>
</body>
</html>`
