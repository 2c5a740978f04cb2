package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

// errInvalidValues makes the process exit 1 without an extra error line; the
// validation report has already been printed.
var errInvalidValues = errors.New("invalid values")

type validationReport struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func newValidateCmd(g *globals) *cobra.Command {
	var values valueFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate field values and print the errors as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			translator, err := loadTranslator(g.cfg.Render)
			if err != nil {
				return err
			}

			errs := newValidator(translator, g.cfg.Render.Locale).Validate(values.values())
			report := validationReport{Valid: errs.Valid(), Errors: errs.Messages()}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.Valid {
				return errInvalidValues
			}
			return nil
		},
	}

	values.bind(cmd)
	return cmd
}
