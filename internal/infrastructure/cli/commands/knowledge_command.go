package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/aiagent-go/internal/app"
	"github.com/doeshing/aiagent-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/aiagent-go/internal/infrastructure/knowledge"
)

// NewKnowledgeCommand creates the knowledge command with all subcommands
func NewKnowledgeCommand(container *app.Container) *cobra.Command {
	knowledgeCmd := &cobra.Command{
		Use:     "knowledge",
		Aliases: []string{"kb"},
		Short:   "Inspect or clear the knowledge base",
	}

	knowledgeCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored queries",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listKnowledge(cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "search <query...>",
			Short: "Look up the stored response for a query",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return searchKnowledge(cmd.OutOrStdout(), container, strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every stored entry",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Knowledge == nil {
					return errors.New(ErrKnowledgeUnavailable)
				}
				if err := container.Knowledge.Clear(); err != nil {
					return fmt.Errorf("failed to clear knowledge base: %w", err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the knowledge file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Knowledge == nil {
					return errors.New(ErrKnowledgeUnavailable)
				}
				fmt.Fprintln(cmd.OutOrStdout(), container.Knowledge.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "templates",
			Short: "Show built-in code templates",
			RunE: func(cmd *cobra.Command, args []string) error {
				showTemplates(cmd.OutOrStdout())
				return nil
			},
		},
	)

	return knowledgeCmd
}

func listKnowledge(out io.Writer, container *app.Container) error {
	if container.Knowledge == nil {
		return errors.New(ErrKnowledgeUnavailable)
	}
	entries := container.Knowledge.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoKnowledge)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s | %s\n", e.Query, helpers.Truncate(e.Response, PreviewWidth))
	}
	fmt.Fprintf(out, "Total: %d\n", len(entries))
	return nil
}

func searchKnowledge(out io.Writer, container *app.Container, query string) error {
	if container.Knowledge == nil {
		return errors.New(ErrKnowledgeUnavailable)
	}
	resp, ok := container.Knowledge.Search(query)
	if !ok {
		fmt.Fprintln(out, MsgNoMatch)
		return nil
	}
	fmt.Fprintln(out, resp)
	return nil
}

func showTemplates(out io.Writer) {
	templates := knowledge.CodeTemplates()
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "== %s ==\n%s\n\n", name, templates[name])
	}
}
