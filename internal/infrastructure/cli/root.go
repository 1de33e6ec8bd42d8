package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/aiagent-go/internal/app"
	"github.com/doeshing/aiagent-go/internal/application/assistant"
	"github.com/doeshing/aiagent-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// ParseGlobalFlags reads --config and --verbose ahead of cobra, since the
// container and its logger are built before the command tree runs.
func ParseGlobalFlags(args []string, opts Options) Options {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return opts
		case arg == "--verbose" || arg == "-v":
			opts.Verbose = true
		case arg == "--config" && i+1 < len(args):
			opts.ConfigPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
		}
	}
	return opts
}

// NewRootCmd wires the cobra root command. The returned container must be
// closed by the caller once the command has run.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, app.Options{ConfigPath: opts.ConfigPath, Verbose: opts.Verbose})
	if err != nil {
		return nil, nil, err
	}

	queryCmd := newQueryCommand(container)

	root := &cobra.Command{
		Use:   "aiagent [query]",
		Short: "Local AI assistant with sandboxed code execution",
		Long:  "aiagent answers queries from templates and a persisted knowledge base, and runs code snippets behind a safety gate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return queryCmd.RunE(cmd, args)
		},
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// parsed early by ParseGlobalFlags; registered so cobra accepts them
	root.PersistentFlags().BoolP("verbose", "v", opts.Verbose, "Enable debug logging")
	root.PersistentFlags().String("config", opts.ConfigPath, "Config file path (default ~/.aiagent/config.yaml)")

	root.AddCommand(queryCmd)
	root.AddCommand(newExecCommand(container))
	root.AddCommand(commands.NewKnowledgeCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewLearningCommand(container))
	root.AddCommand(commands.NewServeCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, container, nil
}

func newQueryCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "query [question]",
		Short: "Answer a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := startSpinner(cmd.ErrOrStderr())
			resp := assistant.AwaitQuery(cmd.Context(), container.Agent.ProcessQuery(cmd.Context(), strings.Join(args, " ")))
			spinner.Stop()
			RenderQuery(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func newExecCommand(container *app.Container) *cobra.Command {
	var (
		language string
		file     string
		code     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a code snippet",
		Long:  "Execute source from --code, --file or stdin. Java and Python are statically analyzed; JavaScript and Go are interpreted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd.InOrStdin(), code, file)
			if err != nil {
				return err
			}
			spinner := startSpinner(cmd.ErrOrStderr())
			res := assistant.AwaitExecution(cmd.Context(), container.Agent.ExecuteCode(cmd.Context(), source, language))
			spinner.Stop()
			if err := RenderExecution(cmd.OutOrStdout(), res, asJSON); err != nil {
				return err
			}
			if !res.Succeeded && !asJSON {
				return errExecutionFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "python", "Source language (java, python, javascript, go)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read source from file")
	cmd.Flags().StringVarP(&code, "code", "c", "", "Inline source text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

var errExecutionFailed = errors.New("execution failed")

func readSource(stdin io.Reader, code, file string) (string, error) {
	switch {
	case code != "" && file != "":
		return "", errors.New("--code and --file are mutually exclusive")
	case code != "":
		return code, nil
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read source: %w", err)
		}
		return string(raw), nil
	default:
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
}

// startSpinner animates only on an interactive stderr.
func startSpinner(w io.Writer) *Spinner {
	s := NewSpinner(w)
	if isTerminal(w) {
		s.Start()
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
