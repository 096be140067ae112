package portal

// Fixed structural assumptions about the SSOtica markup. The service is
// deliberately bound to these; it does not try to survive arbitrary
// portal redesigns.
const (
	selectorLoginEmail    = "#email"
	selectorLoginPassword = "#senha"
	selectorLoginSubmit   = "button.button.bgBlue"

	selectorSearchInput  = `input[name="searchTerm_Parcelamento"]`
	selectorSearchType   = `select[name="searchTermSelect_Parcelamento"]`
	selectorSearchSubmit = `button:has-text("Buscar")`

	selectorResultItem = "li.item-conta-a-receber"
)

// settleControlSelectors are tried in order within a matched result
// element. The portal labels the settle action "Baixar", "Pagar" or
// "Quitar" depending on the installment kind; icon-only variants carry
// the label in aria-label or title.
var settleControlSelectors = []string{
	`button:has-text("Baixar")`,
	`button:has-text("Pagar")`,
	`button:has-text("Quitar")`,
	`a:has-text("Baixar")`,
	`a:has-text("Pagar")`,
	`a:has-text("Quitar")`,
	`[aria-label*="Baixar"]`,
	`[title*="Baixar"]`,
}
