package classify

import "time"

// Closing-reason categories. Labels stay in Portuguese: they are stored as-is
// and shown as-is on the dashboard.
const (
	CategorySped        = "Liberar Sped"
	CategoryInvoiceIn   = "Entrada de nota"
	CategoryCertificate = "Certificado Digital"
	CategoryFuelCard    = "Cadastro de cartão de abastecimento"
	CategoryLMC         = "LMC"
	CategoryPinpad      = "PINPAD"
	CategoryMobilePOS   = "PDV Móvel / Maquininha"
	CategoryPDV         = "PDV"
	CategoryAutomation  = "Automação"
	CategoryPrinters    = "Impressoras"
	CategoryInstall     = "Instalação"
	CategoryManager     = "Gerente"
	CategoryManagerWeb  = "Gerente Web"
	CategoryFinance     = "Financeiro"
	CategoryIntegration = "Integração"
	CategoryNoAnswer    = "Não respondeu"
)

// DefaultRules returns the static rule table tuned against real support
// transcripts from the fuel-station CRM. Declaration order doubles as the
// stable tie-break, so reordering entries changes behavior.
func DefaultRules() RuleSet {
	return RuleSet{
		{
			Category:     CategorySped,
			Keywords:     []string{"sped", "fiscal", "bloco", "inventario", "sintegra", "contabilidade", "gerar", "arquivo"},
			Combos:       []string{"liberar sped", "gerar sped", "notas lancadas", "notas ok", "solicitar sped", "enviar sped"},
			ExcludeWords: []string{"entrada", "importar xml", "cfop", "cst"},
			// Accountants close the fiscal period in the first half of the month.
			TemporalBonus: func(now time.Time) float64 {
				if day := now.Day(); day >= 1 && day <= 15 {
					return 60
				}
				return 0
			},
			Weight:   25,
			Priority: 100,
		},
		{
			Category:     CategoryInvoiceIn,
			Keywords:     []string{"cfop", "entrada", "cst", "aliquota", "icms", "dar entrada", "importar", "lancamento"},
			Combos:       []string{"dar entrada na nota", "entrada de nota", "importar xml", "erro na nota", "lancamento de nota"},
			RequiredAny:  []string{"entrada", "importar", "cfop"},
			ExcludeWords: []string{"sped", "fiscal", "bloco"},
			Weight:       30,
			Priority:     90,
		},
		{
			Category: CategoryCertificate,
			Keywords: []string{"certificado", "digital", "token", "assinatura", "vencido", "renovar", "expirou", "senha certificado", "a3", "a1"},
			Combos:   []string{"certificado digital", "senha do certificado", "token bloqueado", "instalacao do certificado"},
			Weight:   25,
			Priority: 85,
		},
		{
			Category: CategoryFuelCard,
			Keywords: []string{"frentista", "numeracao", "codigo cartao", "frota", "motorista", "placa"},
			Combos:   []string{"carga de tabela", "liberar o cartao", "cadastrado no gerente", "numeracao do cartao"},
			ContextPositive: func(text string) bool {
				return contains(text, "cartao") &&
					(contains(text, "frentista") || contains(text, "frota") || contains(text, "placa"))
			},
			ExcludeWords: []string{"credito", "debito", "transacao", "pinpad", "tef"},
			Weight:       30,
			Priority:     80,
		},
		{
			Category: CategoryLMC,
			Keywords: []string{"lmc", "diferenca", "combustivel", "volume", "escritural", "tanque", "bomba", "litragem", "sobra", "falta", "ajuste saldo"},
			Combos:   []string{"livro de movimentacao", "fechamento de lmc", "abertura de lmc", "diferenca no lmc"},
			Weight:   28,
			Priority: 95,
		},
		{
			Category: CategoryPinpad,
			Keywords: []string{"pinpad", "tef", "stone", "cielo", "pagseguro", "rede", "bin", "getnet", "transacao", "debito", "credito"},
			Combos:   []string{"erro no pinpad", "nao comunica", "transacao negada", "atualizar tabelas", "erro tef"},
			ContextPositive: func(text string) bool {
				return contains(text, "cartao") &&
					(contains(text, "tef") || contains(text, "stone") || contains(text, "cielo"))
			},
			Weight:   25,
			Priority: 88,
		},
		{
			Category:     CategoryMobilePOS,
			Keywords:     []string{"maquininha", "pos", "mobile", "android", "app", "aplicativo", "movel"},
			Combos:       []string{"nao passa", "erro leitura", "parear", "integrar maquininha", "app da acs"},
			ExcludeWords: []string{"computador", "caixa principal", "pdv principal"},
			Weight:       20,
			Priority:     75,
		},
		{
			Category: CategoryPDV,
			Keywords: []string{"pdv", "caixa", "frente", "venda", "cupom", "sangria", "fechamento", "diferenca", "nfce", "pista", "sistema", "tela"},
			Combos:   []string{"abrir caixa", "fechar caixa", "tela de vendas", "cancelar cupom", "lancar venda", "encerrar caixa"},
			ContextPositive: func(text string) bool {
				return contains(text, "computador") || contains(text, "caixa") || contains(text, "sistema da pista")
			},
			Weight:   18,
			Priority: 70,
		},
		{
			Category: CategoryAutomation,
			Keywords: []string{"wifi", "internet", "rede", "lento", "cabo", "sinal", "concentrador", "ip", "roteador", "energia", "queimou", "offline"},
			Combos:   []string{"nao conecta", "caiu a rede", "sem internet", "desligar e ligar", "reiniciar concentrador"},
			Weight:   22,
			Priority: 92,
		},
		{
			Category: CategoryPrinters,
			Keywords: []string{"impressora", "imprimir", "papel", "toner", "termica", "elgin", "bematech", "epson"},
			Combos:   []string{"nao imprime", "travou impressao", "fila de impressao", "cortar papel"},
			Weight:   20,
			Priority: 65,
		},
		{
			Category: CategoryInstall,
			Keywords: []string{"instalar", "formatar", "configurar", "baixar", "computador novo", "formatado", "troca"},
			Combos:   []string{"instalar sistema", "formatou pc", "trocou pc", "acesso remoto", "preciso de instalacao"},
			Weight:   22,
			Priority: 78,
		},
		{
			Category:      CategoryManager,
			Keywords:      []string{"relatorio", "usuario", "senha gerente", "acesso", "permissao", "cadastro", "produto", "estoque", "cliente", "funcionario"},
			Combos:        []string{"resetar senha", "criar usuario", "liberar acesso", "cadastro de produto"},
			OnlyIfNoMatch: true,
			Weight:        12,
			Priority:      30,
		},
		{
			Category: CategoryManagerWeb,
			Keywords: []string{"gerente web", "online", "navegador", "browser", "internet gerente"},
			Combos:   []string{"acessar gerente web", "gerente pela internet"},
			Weight:   18,
			Priority: 60,
		},
		{
			Category: CategoryFinance,
			Keywords: []string{"boleto sistema", "fatura sitegentech", "mensalidade", "pagamento sistema"},
			Combos:   []string{"pagar sistema", "segunda via boleto", "enviar boleto", "fatura atrasada"},
			ContextPositive: func(text string) bool {
				return contains(text, "boleto") &&
					(contains(text, "sistema") || contains(text, "mensalidade") || contains(text, "sitegentech"))
			},
			Weight:   20,
			Priority: 68,
		},
		{
			Category: CategoryIntegration,
			Keywords: []string{"integracao", "pix cnpj", "conciliador", "api", "webhook"},
			Combos:   []string{"integracao pix", "liberar conciliador", "configurar integracao"},
			Weight:   18,
			Priority: 72,
		},
		{
			Category: CategoryNoAnswer,
			Keywords: []string{"vacuo", "nao responde", "encerrando por falta"},
			Combos:   []string{"encerrando por falta de interacao", "sem retorno"},
			Weight:   5,
			Priority: 10,
		},
	}
}
