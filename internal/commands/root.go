// Package commands provides CLI commands for funkychat.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/funkychat/internal/telemetry"
)

var (
	// Global flags
	verboseFlag bool
	backendFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "funkychat",
	Short: "Chat with LangChain and LlamaIndex backends",
	Long: `funkychat is a chat client for two local AI backends: a LangChain
service on port 8000 and a LlamaIndex service on port 8001.

Running it without a subcommand opens the interactive chat.

Examples:
  funkychat                             Start interactive chat
  funkychat -b llamaindex               Chat with LlamaIndex
  funkychat serve                       Serve the browser UI on :8501
  funkychat send "What is RAG?"         Send a single message
  funkychat status                      Check both backends
  funkychat config init                 Write the default config file`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("funkychat %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return runChat(cmd)
	},
}

// Execute runs the root command
func Execute() {
	telemetry.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatCommandError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "Backend to use (langchain or llamaindex)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
}
