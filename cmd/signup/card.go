package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-signup/pkg/card"
	"github.com/goliatone/go-signup/pkg/model"
)

func newCardCmd(g *globals) *cobra.Command {
	var (
		user   model.UserInfo
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render a user info card",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := card.Build(user)

			var (
				out []byte
				err error
			)
			switch strings.ToLower(format) {
			case "html":
				renderer, rerr := newHTMLRenderer(g.cfg.Render, nil)
				if rerr != nil {
					return rerr
				}
				out, err = renderer.RenderCard(commandContext(cmd), c)
			case "json":
				out, err = json.MarshalIndent(c, "", "  ")
				out = append(out, '\n')
			case "yaml", "yml":
				out, err = yaml.Marshal(c)
			default:
				return fmt.Errorf("unsupported card format %q", format)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVar(&user.Name, "name", "", "user name")
	cmd.Flags().StringVar(&user.Email, "email", "", "user email")
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html|json|yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
