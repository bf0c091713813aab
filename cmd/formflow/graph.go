package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formflow/formflow/internal/presentation/graph"
	"github.com/formflow/formflow/pkg/schema"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the form hierarchy visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the form's cards, sets, groups and fields, with conditional edges labeled by their expressions.`,
	Run: func(cmd *cobra.Command, args []string) {
		formPath, _ := cmd.Flags().GetString("form")
		if !cmd.Flags().Changed("form") && len(args) > 0 {
			formPath = args[0]
		}

		form, err := schema.Load(formPath)
		if err != nil {
			fmt.Printf("Error loading form: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(form, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
