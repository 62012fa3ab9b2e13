package main

import (
	"fmt"

	"github.com/spf13/cobra"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/present"
)

func newNoticeCommand(app *cli) *cobra.Command {
	var (
		kind    string
		message string
	)
	cmd := &cobra.Command{
		Use:   "notice",
		Short: "Render the HTML notice fragment for a message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result present.Result
			switch present.ResultKind(kind) {
			case present.ResultSuccess:
				result = present.Success(message)
			case present.ResultError:
				result = present.Failure(message)
			default:
				return fmt.Errorf("invalid --kind %q, want success or error", kind)
			}

			p, err := formflow.NewHTMLPresenter(app.cfg, nil, app.logger)
			if err != nil {
				return err
			}
			fragment, err := p.Render(result)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fragment)
			return err
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(present.ResultSuccess), "notice kind: success or error")
	cmd.Flags().StringVarP(&message, "message", "m", "", "notice text")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
