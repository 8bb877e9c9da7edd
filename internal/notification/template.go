package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sabores/internal/domain"
)

// Template renders the WhatsApp message sent for each new order.
type Template struct {
	StoreName string
	PixKey    string
}

func (t Template) Format(order domain.Order, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🍰 *Novo Pedido - %s*\n\n", t.StoreName)
	fmt.Fprintf(&b, "🛍️ *Produto:* %s", order.ProductName)
	if order.ProductPrice != nil && *order.ProductPrice > 0 {
		fmt.Fprintf(&b, "\n💰 *Preço:* R$ %s", FormatBRL(*order.ProductPrice))
	}

	fmt.Fprintf(&b, "\n\n👤 *Cliente:* %s", order.CustomerName)
	fmt.Fprintf(&b, "\n📱 *WhatsApp:* %s", order.CustomerWhatsapp)
	fmt.Fprintf(&b, "\n📍 *Endereço:* %s", order.CustomerAddress)
	if order.DeliveryDate != "" {
		fmt.Fprintf(&b, "\n📅 *Data para entrega:* %s", formatDate(order.DeliveryDate))
	}

	if order.PaymentMethod == domain.PaymentCard {
		b.WriteString("\n💳 *Pagamento:* Cartão (Levaremos a máquina)")
	} else {
		fmt.Fprintf(&b, "\n💳 *Pagamento:* PIX (Chave: %s)", t.PixKey)
	}

	if order.Notes != "" {
		fmt.Fprintf(&b, "\n📝 *Observações:* %s", order.Notes)
	}

	fmt.Fprintf(&b, "\n\n⏰ *Pedido realizado em:* %s às %s",
		now.Format("02/01/2006"), now.Format("15:04:05"))
	fmt.Fprintf(&b, "\n\n---\n_Pedido realizado através do app %s_", t.StoreName)

	return b.String()
}

// FormatBRL renders an amount with two decimals and a comma separator.
func FormatBRL(amount float64) string {
	return strings.Replace(decimal.NewFromFloat(amount).StringFixed(2), ".", ",", 1)
}

// formatDate turns an ISO date (yyyy-mm-dd) into dd/mm/yyyy. Anything else is
// shown as typed.
func formatDate(value string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if d, err := time.Parse(layout, value); err == nil {
			return d.Format("02/01/2006")
		}
	}
	return value
}
