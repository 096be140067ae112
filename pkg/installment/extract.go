package installment

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Class names and label tokens the portal uses inside each
// li.item-conta-a-receber result item. These are fixed structural
// assumptions; a markup change on the portal side breaks extraction.
const (
	classDescricao = "descricao-conta-a-receber"
	classValor     = "valor-conta-a-receber"
	classStatus    = "status-conta-a-receber"
)

var (
	vendaPattern      = regexp.MustCompile(`Venda nº (\d+)`)
	vencimentoPattern = regexp.MustCompile(`Vencimento: (\d{2}/\d{2}/\d{4})`)
)

// FromHTML builds an Installment from the raw markup of one result
// item. Missing fields degrade to the empty string; extraction never
// fails. Unparseable markup yields a zero-valued record.
func FromHTML(rawHTML string) Installment {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return Installment{}
	}

	text := nodeText(doc)
	venda, vencimento := KeyFromText(text)

	return Installment{
		Descricao:  strings.TrimSpace(nodeText(findByClass(doc, classDescricao))),
		Venda:      venda,
		Valor:      strings.TrimSpace(nodeText(findByClass(doc, classValor))),
		Vencimento: vencimento,
		Status:     strings.TrimSpace(nodeText(findByClass(doc, classStatus))),
	}
}

// KeyFromText extracts the (sale id, due date) composite key from an
// item's visible text. Either component is empty when its label token
// is absent.
func KeyFromText(text string) (venda, vencimento string) {
	if m := vendaPattern.FindStringSubmatch(text); m != nil {
		venda = m[1]
	}
	if m := vencimentoPattern.FindStringSubmatch(text); m != nil {
		vencimento = m[1]
	}
	return venda, vencimento
}

// findByClass walks the node tree and returns the first element whose
// class attribute contains the given class, or nil.
func findByClass(n *html.Node, class string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "class" && hasClass(attr.Val, class) {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// hasClass matches a single class token within a space-separated class
// attribute value.
func hasClass(attrVal, class string) bool {
	for _, token := range strings.Fields(attrVal) {
		if token == class {
			return true
		}
	}
	return false
}

// nodeText concatenates the text content beneath a node, with a space
// between adjacent text runs so label tokens from sibling elements do
// not fuse together.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
