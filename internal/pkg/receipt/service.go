// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/agrimart-client/internal/config"
	"github.com/your-org/agrimart-client/internal/domain/cart"
	"github.com/your-org/agrimart-client/internal/domain/order"
)

// Service generates order receipt PDFs for the admin screens
type Service struct {
	config *config.Config
}

// NewService creates a receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt renders a PDF receipt for an order. The status line
// is the order's effective status, so a pending local override shows
// on paper exactly as it does on screen.
func (s *Service) GenerateReceipt(ord *order.Order, items []cart.Item) (*bytes.Buffer, error) {
	totals := cart.CalculateTotals(items)

	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", ord.OrderNumber),
		ReceiptDate:   time.Now().Format("January 2, 2006"),
		Status:        effectiveStatus(ord),
		Order:         ord,
		Items:         items,
		Totals:        totals,
		Store: StoreInfo{
			Name:  s.config.App.StoreName,
			Phone: s.config.App.StorePhone,
			Email: s.config.App.StoreEmail,
		},
	}

	// Generate HTML from template
	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML renders the receipt template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func effectiveStatus(ord *order.Order) string {
	if ord.EffectiveStatus != "" {
		return ord.EffectiveStatus
	}
	if ord.Status != "" {
		return ord.Status
	}
	return order.DefaultStatus
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string       `json:"receipt_number"`
	ReceiptDate   string       `json:"receipt_date"`
	Status        string       `json:"status"`
	Order         *order.Order `json:"order"`
	Items         []cart.Item  `json:"items"`
	Totals        cart.Totals  `json:"totals"`
	Store         StoreInfo    `json:"store"`
}

// StoreInfo represents storefront information on the receipt header
type StoreInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .store-info {
            flex: 1;
        }
        .receipt-info {
            text-align: right;
            flex: 1;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #15803d;
        }
        .status {
            display: inline-block;
            padding: 4px 12px;
            border-radius: 4px;
            background: #f0fdf4;
            color: #15803d;
            font-weight: bold;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin: 20px 0;
        }
        th, td {
            text-align: left;
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        th {
            background: #f9fafb;
        }
        .totals {
            text-align: right;
            font-size: 16px;
            font-weight: bold;
            margin-top: 10px;
        }
        .footer {
            margin-top: 40px;
            font-size: 12px;
            color: #888;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="store-info">
            <h2>{{.Store.Name}}</h2>
            {{if .Store.Phone}}<div>{{.Store.Phone}}</div>{{end}}
            {{if .Store.Email}}<div>{{.Store.Email}}</div>{{end}}
        </div>
        <div class="receipt-info">
            <div class="receipt-title">RECEIPT</div>
            <div>{{.ReceiptNumber}}</div>
            <div>{{.ReceiptDate}}</div>
            <div class="status">{{.Status}}</div>
        </div>
    </div>

    <div>
        <strong>Order:</strong> {{.Order.OrderNumber}}<br/>
        {{if .Order.CustomerName}}<strong>Customer:</strong> {{.Order.CustomerName}}<br/>{{end}}
    </div>

    <table>
        <thead>
            <tr>
                <th>Item</th>
                <th>Qty</th>
                <th>Price</th>
                <th>Line Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Quantity}}</td>
                <td>{{printf "%.2f" .Price}}</td>
                <td>{{printf "%.2f" .LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        Total: {{printf "%.2f" .Totals.SubTotal}}
    </div>

    <div class="footer">
        Thank you for shopping with {{.Store.Name}}.
    </div>
</body>
</html>
`
