package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitegentech/atendo/internal/classify"
	"github.com/sitegentech/atendo/internal/cli"
	"github.com/sitegentech/atendo/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [summary]",
		Short: "Classify a closing reason from a transcript or summary",
		Long: `Run the closing-reason classifier on a conversation without touching
the database. Useful for tuning the rule tables.

Examples:
  atendo classify "cliente com pinpad travado, não passa cartão"
  atendo classify --file transcript.json`,
		RunE: runClassifyCmd,
	}

	cmd.Flags().StringP("file", "f", "", "JSON file with the message list ([{\"sender\":\"client\",\"text\":\"...\"}])")

	return cmd
}

func runClassifyCmd(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	summary := strings.TrimSpace(strings.Join(args, " "))

	var messages []model.Message
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}
		if err := json.Unmarshal(data, &messages); err != nil {
			return fmt.Errorf("failed to parse transcript: %w", err)
		}
	}

	if len(messages) == 0 && summary == "" {
		return fmt.Errorf("nothing to classify: pass a summary or --file")
	}

	engine, err := classify.NewDefaultEngine()
	if err != nil {
		return fmt.Errorf("failed to build classification engine: %w", err)
	}

	result := engine.Suggest(messages, summary)

	motivo := cli.SuccessStyle.Render(result.Suggestion)
	if result.Suggestion == "" {
		motivo = cli.WarningStyle.Render("nenhuma categoria pontuou")
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s %s\n", cli.BoldStyle.Render("Motivo:"), motivo)
	fmt.Fprintf(&out, "%s %.0f\n", cli.BoldStyle.Render("Confiança:"), result.Confidence)
	if len(result.TopScores) > 0 {
		fmt.Fprintln(&out, cli.SubtleStyle.Render("Pontuações:"))
		for _, score := range result.TopScores {
			fmt.Fprintf(&out, "  %-22s %.1f\n", score.Category, score.Score)
		}
	}

	fmt.Println(cli.RenderBox(cli.RobotIcon+" Classificação", strings.TrimRight(out.String(), "\n")))

	return nil
}
