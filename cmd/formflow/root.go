package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formflow",
	Short: "Formflow is a hierarchical form navigation engine",
	Long:  `Formflow drives multi-step forms declared in YAML: conditional visibility, masked inputs and card/set/group/field navigation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("form", "f", "form.yaml", "Path to the form definition")
}
