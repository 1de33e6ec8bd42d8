package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/doeshing/aiagent-go/internal/domain"
)

// RenderQuery prints a query response.
func RenderQuery(out io.Writer, response string) {
	fmt.Fprintln(out, response)
}

// RenderExecution prints an execution result as text or JSON.
func RenderExecution(out io.Writer, res domain.ExecutionResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprint(out, res.Output)
	if res.Output != "" && res.Output[len(res.Output)-1] != '\n' {
		fmt.Fprintln(out)
	}
	if res.Mode != "" || res.DurationMS > 0 {
		fmt.Fprintf(out, "\n[%s %s, %dms]\n", res.Language, res.Mode, res.DurationMS)
	}
	return nil
}
