package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/openapi"
)

func newOpenAPICmd(_ *globals) *cobra.Command {
	var (
		server string
		output string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []openapi.Option
			if server != "" {
				options = append(options, openapi.WithServer(server))
			}
			doc := openapi.Build(options...)
			if err := openapi.Validate(commandContext(cmd), doc); err != nil {
				return err
			}
			out, err := openapi.Marshal(doc)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, append(out, '\n'))
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL to advertise")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
