package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitegentech/atendo/internal/cli"
	"github.com/sitegentech/atendo/internal/config"
	"github.com/sitegentech/atendo/internal/gamify"
	"github.com/sitegentech/atendo/internal/model"
)

func rankingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the gamification ranking",
		Long: `Recompute and print the agent ranking for a period.

Periods: hoje (default), semana, mes.`,
		RunE: runRanking,
	}

	cmd.Flags().StringP("period", "p", "hoje", "ranking period (hoje, semana, mes)")

	return cmd
}

func runRanking(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	periodFlag, _ := cmd.Flags().GetString("period")
	period := model.ValidPeriod(periodFlag)

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

	syncer := gamify.NewSyncer(store, gamify.NewCalculator(cfg.Location(), gamify.DefaultConfig()))
	if err := syncer.Sync(ctx, period); err != nil {
		return fmt.Errorf("failed to sync ranking: %w", err)
	}

	entries, err := syncer.Get(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to load ranking: %w", err)
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s Ranking (%s)", cli.TrophyIcon, period)))
	if len(entries) == 0 {
		fmt.Println(cli.SubtleStyle.Render("Nenhum atendimento no período."))
		return nil
	}

	header := fmt.Sprintf("%-4s %-20s %8s %8s %6s  %s", "#", "Atendente", "Pontos", "Tickets", "TMA", "Conquistas")
	fmt.Println(cli.TableHeaderStyle.Render(header))
	for i, entry := range entries {
		row := fmt.Sprintf("%-4d %-20s %8d %8d %5dm  %s",
			i+1, entry.AgentID, entry.Points, entry.Tickets, entry.AvgHandleMin,
			strings.Join(entry.Achievements, " "))
		fmt.Println(cli.TableCellStyle.Render(row))
	}

	return nil
}
