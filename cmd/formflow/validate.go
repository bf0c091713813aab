package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formflow/formflow/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a form definition for consistency",
	Long:  `Parses the definition and reports structural problems: empty containers, unknown input kinds, missing choice options and unparseable behaviors.`,
	Run: func(cmd *cobra.Command, args []string) {
		formPath, _ := cmd.Flags().GetString("form")
		if !cmd.Flags().Changed("form") && len(args) > 0 {
			formPath = args[0]
		}

		form, err := schema.Load(formPath)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if err := schema.Validate(form); err != nil {
			fmt.Printf("Validation failed:\n%v\n", err)
			os.Exit(1)
		}
		fmt.Println("Form is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
