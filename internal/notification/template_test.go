package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sabores/internal/domain"
	"sabores/internal/testutil"
)

var testTemplate = Template{StoreName: "Sabores de Zissou", PixKey: "11981047422"}

func TestTemplate_Format_Pix(t *testing.T) {
	order := testutil.NewOrder(1)
	order.ProductPrice = testutil.Float(12.5)
	order.DeliveryDate = "2025-02-14"
	order.Notes = "Sem glúten"
	now := time.Date(2025, 2, 10, 9, 30, 15, 0, time.UTC)

	msg := testTemplate.Format(order, now)

	assert.True(t, strings.HasPrefix(msg, "🍰 *Novo Pedido - Sabores de Zissou*"))
	assert.Contains(t, msg, "*Produto:* Bolo de Cenoura")
	assert.Contains(t, msg, "*Preço:* R$ 12,50")
	assert.Contains(t, msg, "*Cliente:* Cliente 1")
	assert.Contains(t, msg, "*WhatsApp:* (11) 98765-4321")
	assert.Contains(t, msg, "*Endereço:* Rua das Flores, 123")
	assert.Contains(t, msg, "*Data para entrega:* 14/02/2025")
	assert.Contains(t, msg, "PIX (Chave: 11981047422)")
	assert.Contains(t, msg, "*Observações:* Sem glúten")
	assert.Contains(t, msg, "10/02/2025 às 09:30:15")
	assert.True(t, strings.HasSuffix(msg, "_Pedido realizado através do app Sabores de Zissou_"))
}

func TestTemplate_Format_CardWithoutOptionals(t *testing.T) {
	order := testutil.NewOrder(2)
	order.ProductPrice = nil
	order.PaymentMethod = domain.PaymentCard

	msg := testTemplate.Format(order, time.Now())

	assert.Contains(t, msg, "Cartão (Levaremos a máquina)")
	assert.NotContains(t, msg, "Preço")
	assert.NotContains(t, msg, "Data para entrega")
	assert.NotContains(t, msg, "Observações")
	assert.NotContains(t, msg, "PIX")
}

func TestTemplate_Format_UnparseableDateShownAsTyped(t *testing.T) {
	order := testutil.NewOrder(3)
	order.DeliveryDate = "sábado de manhã"

	msg := testTemplate.Format(order, time.Now())
	assert.Contains(t, msg, "*Data para entrega:* sábado de manhã")
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "12,50", FormatBRL(12.5))
	assert.Equal(t, "0,10", FormatBRL(0.1))
	assert.Equal(t, "1234,99", FormatBRL(1234.99))
	assert.Equal(t, "3,00", FormatBRL(3))
}
