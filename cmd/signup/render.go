package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
)

func newRenderCmd(g *globals) *cobra.Command {
	var (
		values       valueFlags
		touched      bool
		showPassword bool
		submitted    bool
		locale       string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the sign-up page as HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			translator, err := loadTranslator(g.cfg.Render)
			if err != nil {
				return err
			}
			renderer, err := newHTMLRenderer(g.cfg.Render, translator)
			if err != nil {
				return err
			}
			if locale == "" {
				locale = g.cfg.Render.Locale
			}

			state := form.NewState().WithValues(values.values())
			if touched {
				state.Touched = model.AllTouched()
			}
			state.ShowPassword = showPassword
			state.Submitted = submitted

			view := form.Render(state, form.WithValidator(newValidator(translator, locale)))
			out, err := renderer.RenderSignup(commandContext(cmd), view, render.RenderOptions{
				Locale:     locale,
				Translator: translator,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}

	values.bind(cmd)
	cmd.Flags().BoolVar(&touched, "touched", false, "mark every field touched so errors are shown")
	cmd.Flags().BoolVar(&showPassword, "show-password", false, "render the password in clear text")
	cmd.Flags().BoolVar(&submitted, "submitted", false, "render the success banner")
	cmd.Flags().StringVar(&locale, "lang", "", "locale (overrides render.locale)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
