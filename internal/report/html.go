package report

import (
	"fmt"
	"html/template"
	"strings"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"signed": func(n int) string {
		if n >= 0 {
			return fmt.Sprintf("+%d", n)
		}
		return fmt.Sprintf("%d", n)
	},
	"inc": func(n int) int { return n + 1 },
}).Parse(`
<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #e2e8f0; border-radius: 8px; overflow: hidden;">
  <div style="background: #2563eb; padding: 25px; text-align: center; color: white;">
    <h1 style="margin: 0; font-size: 24px;">📊 Fechamento do Dia</h1>
    <p style="margin: 5px 0 0 0; opacity: 0.8;">{{.Period}} - {{.Date}}</p>
  </div>
  <div style="padding: 20px; background: #f8fafc;">
    <div style="display: grid; grid-template-columns: 1fr 1fr; gap: 15px; margin-bottom: 20px;">
      <div style="background: white; padding: 15px; border-radius: 8px; border: 1px solid #cbd5e1; text-align: center;">
        <span style="font-size: 12px; color: #64748b; text-transform: uppercase; font-weight: bold;">Volume Total</span>
        <div style="font-size: 32px; font-weight: bold; color: #1e293b; margin: 5px 0;">{{.Total}}</div>
        <div style="font-size: 12px; color: {{if ge .Diff 0}}#16a34a{{else}}#dc2626{{end}}; font-weight: bold;">{{signed .Diff}} vs ontem</div>
      </div>
      <div style="background: white; padding: 15px; border-radius: 8px; border: 1px solid #cbd5e1; text-align: center;">
        <span style="font-size: 12px; color: #64748b; text-transform: uppercase; font-weight: bold;">TMA (Médio)</span>
        <div style="font-size: 32px; font-weight: bold; color: #1e293b; margin: 5px 0;">{{.AvgHandleMin}} <span style="font-size: 16px;">min</span></div>
        <div style="font-size: 12px; color: #64748b;">Tempo médio resolv.</div>
      </div>
    </div>
    <div style="display: grid; grid-template-columns: 1fr 1fr 1fr; gap: 10px; margin-bottom: 25px;">
      <div style="background: #ecfdf5; padding: 10px; border-radius: 6px; text-align: center; border: 1px solid #bbf7d0;">
        <strong style="display: block; color: #166534; font-size: 18px;">{{.Resolved}}</strong>
        <span style="font-size: 11px; color: #15803d; font-weight: bold;">RESOLVIDOS</span>
      </div>
      <div style="background: #eff6ff; padding: 10px; border-radius: 6px; text-align: center; border: 1px solid #bfdbfe;">
        <strong style="display: block; color: #1e40af; font-size: 18px;">{{.Transferred}}</strong>
        <span style="font-size: 11px; color: #1e3a8a; font-weight: bold;">TRANSFERIDOS</span>
      </div>
      <div style="background: #fef2f2; padding: 10px; border-radius: 6px; text-align: center; border: 1px solid #fecaca;">
        <strong style="display: block; color: #991b1b; font-size: 18px;">{{.NoAnswer}}</strong>
        <span style="font-size: 11px; color: #b91c1c; font-weight: bold;">NÃO RESPONDEU</span>
      </div>
    </div>
    <div style="margin-bottom: 25px;">
      <h3 style="font-size: 16px; color: #334155; margin-bottom: 12px; border-bottom: 2px solid #e2e8f0; padding-bottom: 5px;">📞 Origem dos Contatos</h3>
      <div style="display: grid; grid-template-columns: 1fr 1fr; gap: 10px;">
        <div style="background: #ecfdf5; padding: 15px; border-radius: 8px; text-align: center; border: 2px solid #10b981;">
          <div style="font-size: 12px; color: #047857; font-weight: bold; margin-bottom: 5px;">CLIENTE ENTROU EM CONTATO</div>
          <div style="font-size: 28px; font-weight: bold; color: #065f46;">{{.Inbound}}</div>
          <div style="font-size: 11px; color: #10b981; margin-top: 5px;">{{.InboundPercent}}% do total</div>
        </div>
        <div style="background: #fef3c7; padding: 15px; border-radius: 8px; text-align: center; border: 2px solid #f59e0b;">
          <div style="font-size: 12px; color: #92400e; font-weight: bold; margin-bottom: 5px;">ATENDENTE ENTROU EM CONTATO</div>
          <div style="font-size: 28px; font-weight: bold; color: #78350f;">{{.Outbound}}</div>
          <div style="font-size: 11px; color: #d97706; margin-top: 5px;">{{.OutboundPercent}}% do total</div>
        </div>
      </div>
      <p style="font-size: 11px; color: #94a3b8; margin-top: 8px; text-align: center;">* Atendimentos ativos não são contabilizados no ranking de produtividade.</p>
    </div>
    {{if .TopClients}}
    <div style="margin-bottom: 25px;">
      <h3 style="font-size: 16px; color: #334155; margin-bottom: 12px; border-bottom: 2px solid #e2e8f0; padding-bottom: 5px;">🔥 Top Clientes (Volume)</h3>
      {{range .TopClients}}
      <div style="display: flex; align-items: center; justify-content: space-between; padding: 10px; background: white; margin-bottom: 6px; border-radius: 6px; border-left: 4px solid #f97316;">
        <div style="font-weight: 600; color: #1e293b;">{{.Name}}</div>
        <div style="background: #fff7ed; color: #c2410c; padding: 2px 8px; border-radius: 12px; font-size: 12px; font-weight: bold;">{{.Count}} contatos</div>
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .TopAgents}}
    <div>
      <h3 style="font-size: 16px; color: #334155; margin-bottom: 12px; border-bottom: 2px solid #e2e8f0; padding-bottom: 5px;">🏆 Ranking Produtividade</h3>
      <div style="background: white; border-radius: 8px; overflow: hidden; border: 1px solid #e2e8f0;">
        {{range $i, $a := .TopAgents}}
        <div style="display: flex; align-items: center; justify-content: space-between; padding: 12px; border-bottom: 1px solid #f1f5f9;">
          <div style="display: flex; align-items: center; gap: 10px;">
            <div style="width: 24px; height: 24px; background: {{if lt $i 3}}#0f766e{{else}}#94a3b8{{end}}; color: white; border-radius: 50%; text-align: center; font-size: 12px; font-weight: bold;">{{inc $i}}</div>
            <span style="font-weight: 600; color: #334155;">{{$a.Name}}</span>
          </div>
          <span style="color: #0d9488; font-weight: bold;">{{$a.Count}} ✅</span>
        </div>
        {{end}}
      </div>
      <p style="font-size: 11px; color: #94a3b8; margin-top: 8px; text-align: center;">* Ranking considera apenas atendimentos finalizados com sucesso.</p>
    </div>
    {{end}}
    {{if .Sample}}
    <div style="margin-top: 25px;">
      <h3 style="font-size: 16px; color: #334155; margin-bottom: 12px; border-bottom: 2px solid #e2e8f0; padding-bottom: 5px;">📋 Detalhamento (Amostra)</h3>
      <table style="width: 100%; border-collapse: collapse; font-size: 12px;">
        <thead>
          <tr style="background: #f1f5f9;">
            <th style="padding: 8px; text-align: left; border-bottom: 1px solid #e2e8f0;">Cliente</th>
            <th style="padding: 8px; text-align: left; border-bottom: 1px solid #e2e8f0;">Atendente</th>
            <th style="padding: 8px; text-align: left; border-bottom: 1px solid #e2e8f0;">Status</th>
          </tr>
        </thead>
        <tbody>
          {{range .Sample}}
          <tr>
            <td style="padding: 8px; border-bottom: 1px solid #f1f5f9;">{{.Client}}</td>
            <td style="padding: 8px; border-bottom: 1px solid #f1f5f9;">{{.Agent}}</td>
            <td style="padding: 8px; border-bottom: 1px solid #f1f5f9;">{{.Status}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>
    {{end}}
  </div>
  <div style="background: #f1f5f9; padding: 15px; text-align: center; color: #64748b; font-size: 12px;">
    Relatório gerado automaticamente • Sitegen Tech CRM
  </div>
</div>
`))

// RenderHTML renders the daily summary as an email-ready HTML fragment.
func RenderHTML(summary *DailySummary) (string, error) {
	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, summary); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return sb.String(), nil
}
