package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gitagent.dev/gitagent/internal/envelope"
)

var (
	successMark = color.New(color.FgGreen).SprintFunc()
	failureMark = color.New(color.FgRed).SprintFunc()
)

// render prints the envelope to the command's stdout, as JSON when requested,
// and reports failed envelopes through the command's exit status.
func render(cmd *cobra.Command, opts *options, env envelope.Envelope) error {
	out := cmd.OutOrStdout()

	if opts.jsonOut {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("encode envelope: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else if env.Succeeded {
		fmt.Fprintf(out, "%s %s\n", successMark("ok:"), env.Output)
	} else {
		fmt.Fprintf(out, "%s %s\n", failureMark("error:"), env.String())
	}

	if !env.Succeeded {
		return ErrOperationFailed
	}
	return nil
}
