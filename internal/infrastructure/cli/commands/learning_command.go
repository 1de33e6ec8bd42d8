package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/doeshing/aiagent-go/internal/app"
	"github.com/doeshing/aiagent-go/internal/domain"
)

// NewLearningCommand shows the learner state for this process.
func NewLearningCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "learning",
		Short: "Show learned weights and counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := container.Learning.Snapshot()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			displaySnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	return cmd
}

func displaySnapshot(out io.Writer, snap domain.LearningSnapshot) {
	names := make([]string, 0, len(snap.Weights))
	for name := range snap.Weights {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Weights:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.2f\n", name, snap.Weights[name])
	}
	fmt.Fprintf(out, "Interactions: %d\nExecutions: %d (%d succeeded)\n",
		snap.Interactions, snap.Executions, snap.Successes)
}
