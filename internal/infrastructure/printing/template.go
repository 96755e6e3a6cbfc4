package printing

import (
	"html/template"

	"github.com/shopspring/decimal"
)

// receiptTemplate is the built-in receipt layout, sized for 80mm thermal
// paper. Prices are preformatted by the template funcs below.
const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Receipt {{.OrderNumber}}</title>
<style>
  body {
    font-family: "Courier New", monospace;
    font-size: 12px;
    margin: 0;
    padding: 8px;
    width: 72mm;
  }
  .store { text-align: center; font-size: 14px; font-weight: bold; }
  .meta { text-align: center; margin-bottom: 8px; }
  .rule { border-top: 1px dashed #000; margin: 6px 0; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 1px 0; vertical-align: top; }
  .qty { width: 12%; }
  .amount { text-align: right; white-space: nowrap; }
  .total td { font-weight: bold; font-size: 13px; padding-top: 4px; }
  .footer { text-align: center; margin-top: 10px; }
</style>
</head>
<body>
  <div class="store">{{.StoreName}}</div>
  <div class="meta">
    {{.OrderNumber}}<br>
    {{.IssuedAt.Format "2006-01-02 15:04"}}<br>
    Customer: {{.CustomerName}}
  </div>
  <div class="rule"></div>
  <table>
    {{range .Lines}}
    <tr>
      <td class="qty">{{.Quantity}}x</td>
      <td>{{.Name}}</td>
      <td class="amount">{{money .LineTotal}}</td>
    </tr>
    {{if gt .Quantity 1}}
    <tr>
      <td></td>
      <td colspan="2">@ {{money .UnitPrice}}</td>
    </tr>
    {{end}}
    {{end}}
  </table>
  <div class="rule"></div>
  <table>
    <tr class="total">
      <td>TOTAL</td>
      <td class="amount">{{money .TotalAmount}}</td>
    </tr>
  </table>
  <div class="footer">Thank you for your purchase!</div>
</body>
</html>
`

func parseReceiptTemplate() (*template.Template, error) {
	return template.New("receipt").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
	}).Parse(receiptTemplate)
}
