package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitegentech/atendo/internal/cli"
	"github.com/sitegentech/atendo/internal/config"
	"github.com/sitegentech/atendo/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build or send the daily attendance report",
		Long: `Build today's attendance report. By default the HTML is written to
stdout for inspection; --send delivers it to the configured recipients.

Examples:
  atendo report > relatorio.html
  atendo report --send
  atendo report --output relatorio.html`,
		RunE: runReport,
	}

	cmd.Flags().String("period", report.DefaultPeriod, "report period label")
	cmd.Flags().StringP("output", "o", "", "write the HTML to a file instead of stdout")
	cmd.Flags().Bool("send", false, "send the report by email instead of printing it")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	period, _ := cmd.Flags().GetString("period")
	output, _ := cmd.Flags().GetString("output")
	send, _ := cmd.Flags().GetBool("send")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if send {
		if !cfg.SMTPConfigured() {
			return fmt.Errorf("smtp is not configured, set smtp.host and report.recipients")
		}
		reporter := report.NewReporter(store, report.NewSMTPSender(cfg.SMTP), cfg.Location())
		summary, sendErr := reporter.Send(ctx, period)
		if sendErr != nil {
			return fmt.Errorf("failed to send report: %w", sendErr)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Relatório enviado (%d atendimentos)", summary.Total)))
		return nil
	}

	reporter := report.NewReporter(store, nil, cfg.Location())
	summary, err := reporter.Build(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	html, err := report.RenderHTML(summary)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if output != "" {
		if writeErr := os.WriteFile(output, []byte(html), 0o644); writeErr != nil {
			return fmt.Errorf("failed to write report: %w", writeErr)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Relatório salvo em %s (%d atendimentos)", output, summary.Total)))
		return nil
	}

	fmt.Print(html)
	return nil
}
