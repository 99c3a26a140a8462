package cli

import (
	"fmt"
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/sizing"
)

const defaultWordsCount = 20

// wordsCommand creates the words command, which prints word frequencies.
func (c *CLI) wordsCommand() *cobra.Command {
	var (
		flags       countFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "words <input>...",
		Short: "List the most frequent words",
		Long: `List the most frequent words of the inputs after stop-word removal,
with the font size each would get in a cloud.

With --interactive, pick words to exclude from an interactive list; the
selection is added to the config file's stop words.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.FromConfig(cfg)
			opts.Count = defaultWordsCount
			flags.apply(cmd, &opts)
			opts.Logger = c.Logger

			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			if opts.Text, err = readInputs(paths); err != nil {
				return err
			}

			res, err := pipeline.Count(cmd.Context(), opts)
			if err != nil {
				return err
			}

			mapper := &sizing.Mapper{MaxFontSize: opts.FontSize, Ratio: opts.Ratio}
			if !interactive {
				fmt.Println(wordTable(res, mapper))
				printDetail("%d distinct words, %d occurrences", res.Distinct, res.Total)
				return nil
			}
			return c.runExcludeList(res)
		},
	}

	flags.register(cmd)
	cmd.Flags().Lookup("count").DefValue = strconv.Itoa(defaultWordsCount)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "select words to exclude interactively")

	return cmd
}

// wordTable renders the ranked words as a table.
func wordTable(res *pipeline.CountResult, mapper *sizing.Mapper) string {
	maxCount := 0
	if len(res.Top) > 0 {
		maxCount = res.Top[0].Count
	}

	rows := make([][]string, 0, len(res.Top))
	for i, e := range res.Top {
		share := 0.0
		if res.Total > 0 {
			share = 100 * float64(e.Count) / float64(res.Total)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Word,
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.1f%%", share),
			fmt.Sprintf("%.1f", mapper.FontSize(e.Count, maxCount)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Word", "Count", "Share", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 1:
				return base.Foreground(colorWhite)
			case col == 2:
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorGray)
		}).
		Render()
}

// runExcludeList runs the interactive exclusion list and saves the result.
func (c *CLI) runExcludeList(res *pipeline.CountResult) error {
	final, err := tea.NewProgram(NewExcludeListModel(res.Top)).Run()
	if err != nil {
		return fmt.Errorf("interactive list: %w", err)
	}
	m, ok := final.(ExcludeListModel)
	if !ok || !m.Confirmed {
		printInfo("Nothing saved")
		return nil
	}
	marked := m.MarkedWords()
	if len(marked) == 0 {
		printInfo("No words selected")
		return nil
	}
	slices.Sort(marked)
	return c.updateStopWords(marked, nil)
}
