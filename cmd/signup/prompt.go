package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/renderers/tui"
)

func newPromptCmd(g *globals) *cobra.Command {
	var (
		prefill     valueFlags
		format      string
		maxAttempts int
		deliver     bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the sign-up form interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := tui.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			translator, err := loadTranslator(g.cfg.Render)
			if err != nil {
				return err
			}

			options := []tui.Option{
				tui.WithOutputFormat(outputFormat),
				tui.WithLogger(g.logger),
				tui.WithValidator(newValidator(translator, g.cfg.Render.Locale)),
				tui.WithPrefill(prefill.values()),
				tui.WithMaxAttempts(maxAttempts),
				tui.WithInfoOutput(cmd.ErrOrStderr()),
			}
			if deliver {
				target, closer, err := buildSink(g.cfg.Sink, g.logger)
				if err != nil {
					return err
				}
				defer closer.Close()
				options = append(options, tui.WithSink(target))
			}

			renderer, err := tui.New(options...)
			if err != nil {
				return err
			}
			out, err := renderer.Run(commandContext(cmd))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, append(out, '\n'))
		},
	}

	prefill.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|yaml|form|pretty")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 5, "re-prompts allowed per field")
	cmd.Flags().BoolVar(&deliver, "deliver", false, "deliver the submission to the configured sinks")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
