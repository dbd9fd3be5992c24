package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minSummaryLen is the shortest summary worth classifying; anything below it
// is a greeting or a stray digit from a client who never engaged.
const minSummaryLen = 15

// Cascade patterns, compiled once at package load. The summary is lowercased
// and trimmed but keeps its accents, so patterns carry both spellings where
// real chats mix them.
var (
	reSped = regexp.MustCompile(`sped|fiscal|contabil`)

	reMobilePOS        = regexp.MustCompile(`maquinh|maquinet|stone|cielo`)
	reMobilePOSContext = regexp.MustCompile(`cartão|cartao|pix|payment|estorn|pagamento|não passa|nao passa|aceita|offline|ip|comunica`)
	reMaquininha       = regexp.MustCompile(`maquinh|maquinet`)

	rePinpad = regexp.MustCompile(`pinpad|tef|terminal fixo`)

	reInvoiceIn  = regexp.MustCompile(`(dar|dando|dá)\s*(entrada|a\s*entrada).{0,20}\b(nota|xml)|nota.{0,20}entrada|manifesto|nota.*(não|nao)\s*(sobe|aparece)`)
	reInvoicePos = regexp.MustCompile(`lançar.{0,10}nota`)
	reAccounting = regexp.MustCompile(`sped|contabil`)

	reAutomation = regexp.MustCompile(`concentrador|bomba.{0,25}(não|nao|offline|comunica)|loop|barreira|encerrante`)

	reLMC = regexp.MustCompile(`\blmc\b|tanque|medição|medicao|escritural|saldo.*tanque`)

	reInstall = regexp.MustCompile(`instalar.{0,10}sistema|novo.{0,5}computador|backup|configurar.{0,5}pdv|formatar|reinstalar`)

	reCertificate = regexp.MustCompile(`certificado|\.pfx|senha.*certificado`)

	reFuelCard = regexp.MustCompile(`(liberar|cadastrar).{0,15}cartão|cartão.{0,15}frentista|código.*cartão`)

	rePDV = regexp.MustCompile(`caixa|cupom|lançar.{0,25}venda|venda.{0,25}lançar|abastecimento.*(não|nao)\s*(lança|sobe)|sistema.{0,15}(lançar|lançando|não.*lança|nao.*lanca)|sistema\s*trava`)

	reBilling        = regexp.MustCompile(`boleto|fatura|mensalidade|cobran`)
	reBillingContext = regexp.MustCompile(`sitegen tech|sitegentech|sistema|suporte`)

	reAdmin = regexp.MustCompile(`relatório|relatorio|consultar|cadastr|acesso|bloqueado`)
)

// CascadeClassifier assigns a closing reason to a single summarized string.
// Unlike the weighted scorer the cascade is exclusive and order-sensitive:
// the first satisfied test wins and everything below it is skipped. It is
// total: every input resolves to a concrete category.
type CascadeClassifier struct{}

// NewCascadeClassifier returns the summary-mode strategy.
func NewCascadeClassifier() *CascadeClassifier {
	return &CascadeClassifier{}
}

// Name identifies the strategy in logs and feedback records.
func (c *CascadeClassifier) Name() string { return "cascade" }

// Classify resolves a summary to a category name, falling back to the
// generic administrative category when no specific rule matches.
func (c *CascadeClassifier) Classify(summary string) string {
	ctx := strings.TrimSpace(strings.ToLower(summary))

	if utf8.RuneCountInString(ctx) < minSummaryLen {
		return CategoryNoAnswer
	}

	if reSped.MatchString(ctx) {
		return CategorySped
	}

	if reMobilePOS.MatchString(ctx) && reMobilePOSContext.MatchString(ctx) {
		return CategoryMobilePOS
	}

	if rePinpad.MatchString(ctx) {
		return CategoryPinpad
	}

	if reInvoiceIn.MatchString(ctx) {
		return CategoryInvoiceIn
	}
	// "lançar nota" is invoice entry unless the chat is about SPED exports.
	if reInvoicePos.MatchString(ctx) && !reAccounting.MatchString(ctx) {
		return CategoryInvoiceIn
	}

	if reAutomation.MatchString(ctx) {
		return CategoryAutomation
	}

	if reLMC.MatchString(ctx) {
		return CategoryLMC
	}

	if reInstall.MatchString(ctx) {
		return CategoryInstall
	}

	if reCertificate.MatchString(ctx) {
		return CategoryCertificate
	}

	// Fuel-card and PDV exclude explicit maquininha mentions only. Brand
	// names alone (stone, cielo) stay eligible here: a summary like
	// "caixa nao abre, uso terminal stone" is still a PDV chat.
	if reFuelCard.MatchString(ctx) && !reMaquininha.MatchString(ctx) {
		return CategoryFuelCard
	}

	if rePDV.MatchString(ctx) && !reMaquininha.MatchString(ctx) {
		return CategoryPDV
	}

	if reBilling.MatchString(ctx) && reBillingContext.MatchString(ctx) {
		return CategoryFinance
	}

	if reAdmin.MatchString(ctx) {
		return CategoryManager
	}

	return CategoryManager
}
