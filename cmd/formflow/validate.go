package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/pkg/validation"
)

func newValidateCommand(app *cli) *cobra.Command {
	var (
		fields []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate <application|contact>",
		Short: "Check field values without submitting; exits 1 when invalid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := app.kindArg(args[0])
			if err != nil {
				return err
			}
			set, err := parseFieldFlags(fields)
			if err != nil {
				return err
			}

			verdict := validation.Validate(set, kind)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				if err := enc.Encode(verdict); err != nil {
					return err
				}
			} else if verdict.Valid {
				fmt.Fprintf(out, "valid: %s\n", kind)
			} else {
				fmt.Fprintf(out, "invalid: %s (%s)\n", verdict.Message, verdict.Field)
			}

			if !verdict.Valid {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field value as name=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the verdict as JSON")
	return cmd
}
