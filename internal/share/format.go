// Package share renders product share text and delivers it through the
// best available share target.
package share

import (
	"strings"

	"github.com/bobmcallan/wealth-portal/internal/models"
)

// UnknownReturn is rendered when a product has no 6-month return.
const UnknownReturn = "—"

// ClipboardNotice is the confirmation shown after a clipboard copy.
const ClipboardNotice = "产品信息已复制到剪贴板，快去分享吧！"

// Format renders the share text for p, titled by its own product type.
func Format(p *models.Product) string {
	return FormatFor(p.Type, p)
}

// FormatFor renders the share text for p as shown on the list of type list.
func FormatFor(list models.ProductType, p *models.Product) string {
	sixMonth := UnknownReturn
	if v, ok := p.Returns.Get(models.Period6M); ok {
		sixMonth = models.FormatReturn(v)
	}

	var b strings.Builder
	b.WriteString("【" + list.Title() + "分享】\n")
	b.WriteString("产品名称：" + p.Name + "\n")
	b.WriteString("产品编号：" + p.Code + "\n")
	b.WriteString("近6月收益：" + sixMonth + "%\n")
	b.WriteString("在售渠道：" + strings.Join(p.Banks, "、"))
	return b.String()
}

// ListCard is the placeholder product shared from a list header, where the
// whole list rather than one product is being shared.
func ListCard(list models.ProductType) models.Product {
	return models.Product{
		Name: list.Title(),
		Code: "FinanceTool",
		Returns: models.Returns{
			OneMonth:   models.Float(0),
			ThreeMonth: models.Float(0),
			SixMonth:   models.Float(0),
		},
		Banks: []string{"Web"},
		Type:  models.ProductTypeWealth,
	}
}

// Payload is what a native share target receives.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// NewPayload builds the share payload for p on list, linking to pageURL.
func NewPayload(list models.ProductType, p *models.Product, pageURL string) Payload {
	return Payload{
		Title: p.Name,
		Text:  FormatFor(list, p),
		URL:   pageURL,
	}
}
