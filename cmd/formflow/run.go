package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formflow/formflow/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fill a form interactively on the terminal",
	Long:  `Starts the engine in interactive mode. Values are entered as plain text or name=value; /next, /prev, /state, /graph and /quit control the session.`,
	Run: func(cmd *cobra.Command, args []string) {
		formPath, _ := cmd.Flags().GetString("form")
		if !cmd.Flags().Changed("form") && len(args) > 0 {
			formPath = args[0]
		}

		opts := cli.RunOptions{
			FormPath:  formPath,
			SessionID: flagString(cmd, "session"),
			Fresh:     flagBool(cmd, "fresh"),
			Headless:  flagBool(cmd, "headless"),
			Debug:     flagBool(cmd, "debug"),
			Behavior:  flagString(cmd, "behavior"),
			RedisURL:  flagString(cmd, "redis-url"),
			StorePath: flagString(cmd, "store-path"),
		}

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("session", "", "Session ID for persistence and resume")
	runCmd.Flags().Bool("fresh", false, "Discard any stored state for the session")
	runCmd.Flags().Bool("headless", false, "Run without the TUI (strict IO)")
	runCmd.Flags().Bool("debug", false, "Enable debug logging to stderr")
	runCmd.Flags().String("behavior", "", "Override movement granularity: field, group, set or card")
	runCmd.Flags().String("redis-url", "", "Use Redis for session storage (redis://...)")
	runCmd.Flags().String("store-path", "", "Directory for file session storage")

	rootCmd.Run = runCmd.Run
}
