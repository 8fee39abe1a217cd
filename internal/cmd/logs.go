package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/logging"
)

// Default poll interval for following logs.
const defaultLogPollInterval = 100 * time.Millisecond

var logsCmd = &cobra.Command{
	Use:   "logs <tool> [invocation]",
	Short: "View recorded tool output",
	Long: `View the output recorded for a tool invocation.

Without an invocation ID the most recent invocation is shown. Each line is
prefixed with the stream it came from unless --plain is set.`,
	Example: `  # View recent output of the latest make run (last 100 lines)
  toolrun logs make

  # List recorded invocations
  toolrun logs make --list

  # Show a specific invocation in full
  toolrun logs make 20260101T120000-happy_panda --full

  # Follow output in real-time
  toolrun logs make -f`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLogsCmd,
}

func runLogsCmd(cmd *cobra.Command, args []string) error {
	toolName := args[0]

	follow, err := cmd.Flags().GetBool("follow")
	if err != nil {
		return fmt.Errorf("get follow flag: %w", err)
	}
	lines, err := cmd.Flags().GetInt("lines")
	if err != nil {
		return fmt.Errorf("get lines flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("get full flag: %w", err)
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("get list flag: %w", err)
	}
	plain, err := cmd.Flags().GetBool("plain")
	if err != nil {
		return fmt.Errorf("get plain flag: %w", err)
	}

	logsDir, err := getLogsDir(cmd.Context())
	if err != nil {
		return fmt.Errorf("get logs directory: %w", err)
	}
	pathMgr := logging.NewPathManager(afero.NewOsFs(), logsDir)
	reader := logging.NewReader(pathMgr)
	out := cmd.OutOrStdout()

	if list {
		ids, err := pathMgr.ListInvocations(toolName)
		if err != nil {
			return fmt.Errorf("list invocations: %w", err)
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	var id string
	if len(args) == 2 {
		id = args[1]
		if !pathMgr.LogExists(toolName, id) {
			return fmt.Errorf("no log file found for invocation %s of %s", id, toolName)
		}
	} else if id, err = reader.Latest(toolName); err != nil {
		return err
	}

	if full {
		lines = 0
	} else if lines < 1 {
		return fmt.Errorf("invalid --lines value %d: must be positive", lines)
	}
	return outputLogs(cmd.Context(), out, reader, toolName, id, follow, lines, plain)
}

func outputLogs(ctx context.Context, out io.Writer, reader *logging.Reader, toolName, id string, follow bool, lines int, plain bool) error {
	var logLines []string
	var err error

	if lines == 0 {
		logLines, err = reader.ReadAll(toolName, id)
	} else {
		logLines, err = reader.ReadLastN(toolName, id, lines)
	}
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	for _, line := range logLines {
		if plain {
			_, line = logging.StripTag(line)
		}
		fmt.Fprintln(out, line)
	}

	if follow {
		return reader.Follow(ctx, toolName, id, out, defaultLogPollInterval)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolP("follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntP("lines", "n", logging.DefaultTailLines, "number of lines to show")
	logsCmd.Flags().Bool("full", false, "show the entire log")
	logsCmd.Flags().Bool("list", false, "list recorded invocations of the tool")
	logsCmd.Flags().Bool("plain", false, "omit the stream prefix of each line")
}
