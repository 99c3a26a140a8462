package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// excludeCommand creates the exclude command, which edits the stop-word
// list in the config file.
func (c *CLI) excludeCommand() *cobra.Command {
	var remove, list bool

	cmd := &cobra.Command{
		Use:   "exclude [word]...",
		Short: "Leave words out of every future cloud",
		Long: `Add words to the stop-word list in the config file.

The list applies to every render, layout and words run on top of the
built-in English stop words. Use --remove to take words off the list and
--list to print it.`,
		Example: `  tagcloud exclude lorem ipsum
  tagcloud exclude --remove ipsum
  tagcloud exclude --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return c.listStopWords()
			}
			if len(args) == 0 {
				return fmt.Errorf("at least one word is required")
			}
			if remove {
				return c.updateStopWords(nil, args)
			}
			return c.updateStopWords(args, nil)
		},
	}

	cmd.Flags().BoolVarP(&remove, "remove", "r", false, "remove the words from the list")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print the configured stop words")

	return cmd
}

// updateStopWords applies the edits to the config file, creating it if
// needed, and reports what changed.
func (c *CLI) updateStopWords(add, remove []string) error {
	path, _, err := c.resolveConfigPath()
	if err != nil {
		return fmt.Errorf("locate config: %w", err)
	}
	cfg, err := config.Load(path, true)
	if err != nil {
		return err
	}

	var added, removed []string
	for _, w := range add {
		ok, err := cfg.AddStopWord(w)
		if err != nil {
			return err
		}
		if ok {
			added = append(added, strings.ToLower(w))
		} else {
			printInfo("%s is already excluded", StyleValue.Render(w))
		}
	}
	for _, w := range remove {
		if cfg.RemoveStopWord(w) {
			removed = append(removed, strings.ToLower(w))
		} else {
			printInfo("%s is not in the list", StyleValue.Render(w))
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	c.Logger.Debug("saved config", "path", path, "added", added, "removed", removed)

	if len(added) > 0 {
		printSuccess("Excluded %s", strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		printSuccess("Included again %s", strings.Join(removed, ", "))
	}
	printDetail("Config: %s", path)
	return nil
}

func (c *CLI) listStopWords() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Words.StopWords) == 0 {
		printInfo("No custom stop words")
	}
	for _, w := range cfg.Words.StopWords {
		fmt.Println(w)
	}
	if cfg.Words.NoDefaultStopWords {
		printDetail("Built-in stop words are disabled")
	} else {
		printDetail("Plus %d built-in English stop words", len(words.DefaultStopWords))
	}
	return nil
}
