package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/prompt"
	"github.com/jmgilman/toolrun/internal/secrets"
)

// openSecretStore opens the secret store. Replaced in tests.
var openSecretStore = func() (secrets.Store, error) {
	return secrets.Open(secrets.ServiceName)
}

func newPrompter(cmd *cobra.Command) prompt.Prompter {
	return prompt.New(cmd.InOrStdin())
}

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage tool secrets",
	Long: `Manage secrets stored in the system keyring.

A tool lists the secrets it needs in its secrets config entry. Each one is
passed to the tool as an environment variable of the same name.`,
}

var secretSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Store a secret",
	Long: `Store a secret in the system keyring.

The value is prompted for without echo, or read from the first line of
standard input when it is not a terminal.`,
	Example: `  # Prompt for a value
  toolrun secret set NUGET_API_KEY

  # Read the value from a pipe
  echo "$TOKEN" | toolrun secret set GH_TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSecretStore()
		if err != nil {
			return err
		}

		value, err := newPrompter(cmd).Secret("Value for " + args[0])
		if err != nil {
			return err
		}

		if err := store.Set(args[0], value); err != nil {
			return fmt.Errorf("store secret: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", args[0])
		return nil
	},
}

var secretRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, err := cmd.Flags().GetBool("yes")
		if err != nil {
			return fmt.Errorf("get yes flag: %w", err)
		}

		if !yes {
			confirmed, err := newPrompter(cmd).Confirm("Remove secret "+args[0]+"?", "Tools that need it will fail to start.")
			if err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
		}

		store, err := openSecretStore()
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var secretListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored secret names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSecretStore()
		if err != nil {
			return err
		}
		names, err := store.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(secretSetCmd, secretRmCmd, secretListCmd)

	secretRmCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
