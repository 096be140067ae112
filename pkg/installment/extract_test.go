package installment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleItemHTML = `<li class="item-conta-a-receber">
	<div class="descricao-conta-a-receber"> MANUTENCAO DE SISTEMA </div>
	<span>Venda nº 12345</span>
	<span>Vencimento: 25/12/2024</span>
	<div class="valor-conta-a-receber">R$ 100,00</div>
	<div class="status-conta-a-receber">EM ABERTO</div>
</li>`

func TestFromHTML_FullItem(t *testing.T) {
	got := FromHTML(sampleItemHTML)

	assert.Equal(t, "MANUTENCAO DE SISTEMA", got.Descricao)
	assert.Equal(t, "12345", got.Venda)
	assert.Equal(t, "R$ 100,00", got.Valor)
	assert.Equal(t, "25/12/2024", got.Vencimento)
	assert.Equal(t, "EM ABERTO", got.Status)
}

func TestFromHTML_MissingFieldsDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Installment
	}{
		{
			name: "empty item",
			html: `<li class="item-conta-a-receber"></li>`,
			want: Installment{},
		},
		{
			name: "only status",
			html: `<li><div class="status-conta-a-receber">PAGO</div></li>`,
			want: Installment{Status: "PAGO"},
		},
		{
			name: "sale id without due date",
			html: `<li><span>Venda nº 789</span></li>`,
			want: Installment{Venda: "789"},
		},
		{
			name: "due date label with wrong date shape",
			html: `<li><span>Vencimento: 2024-12-25</span></li>`,
			want: Installment{},
		},
		{
			name: "empty input",
			html: "",
			want: Installment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromHTML(tt.html))
		})
	}
}

func TestFromHTML_LabelAndValueInSeparateElements(t *testing.T) {
	raw := `<li>
		<span class="label">Vencimento:</span><span class="value">10/11/2024</span>
		<b>Venda nº</b> <b>42</b>
	</li>`

	got := FromHTML(raw)

	assert.Equal(t, "10/11/2024", got.Vencimento)
	assert.Equal(t, "42", got.Venda)
}

func TestFromHTML_TakesFirstMatchingClass(t *testing.T) {
	raw := `<li>
		<div class="status-conta-a-receber">EM ABERTO</div>
		<div class="status-conta-a-receber">PAGO</div>
	</li>`

	assert.Equal(t, "EM ABERTO", FromHTML(raw).Status)
}

func TestKeyFromText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantVenda      string
		wantVencimento string
	}{
		{
			name:           "both present",
			text:           "Parcela 1/3 Venda nº 789 Vencimento: 25/12/2024 R$ 50,00",
			wantVenda:      "789",
			wantVencimento: "25/12/2024",
		},
		{
			name:      "sale id only",
			text:      "Venda nº 100",
			wantVenda: "100",
		},
		{
			name:           "due date only",
			text:           "Vencimento: 01/01/2025",
			wantVencimento: "01/01/2025",
		},
		{
			name: "no labels",
			text: "nothing of interest here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venda, vencimento := KeyFromText(tt.text)
			assert.Equal(t, tt.wantVenda, venda)
			assert.Equal(t, tt.wantVencimento, vencimento)
		})
	}
}
