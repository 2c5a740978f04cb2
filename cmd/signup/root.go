package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/internal/config"
	"github.com/goliatone/go-signup/internal/logging"
)

const (
	serviceName       = "signup"
	defaultConfigFile = "signup.yaml"
)

// globals holds state shared by every subcommand once the root pre-run has
// loaded configuration.
type globals struct {
	configPath string
	envFiles   []string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
}

// NewRootCmd returns the root command for the signup CLI.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "signup",
		Short:         "Sign-up form validator, renderer and service",
		Long:          "signup validates, renders and serves a three field sign-up form and a user info card.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default is ./signup.yaml when present)")
	flags.StringSliceVar(&g.envFiles, "env-file", nil, "dotenv files to load (default .env, .env.local)")
	flags.StringVar(&g.logLevel, "log-level", "", "override log level: debug|info|warn|error")

	rootCmd.AddCommand(newServeCmd(g))
	rootCmd.AddCommand(newPromptCmd(g))
	rootCmd.AddCommand(newRenderCmd(g))
	rootCmd.AddCommand(newCardCmd(g))
	rootCmd.AddCommand(newValidateCmd(g))
	rootCmd.AddCommand(newOpenAPICmd(g))

	return rootCmd
}

func (g *globals) load(cmd *cobra.Command) error {
	bootstrap := logging.NewLogger(logging.Options{Level: g.logLevel, Output: cmd.ErrOrStderr()})
	config.LoadEnv(bootstrap, g.envFiles...)

	path := g.configPath
	if path == "" {
		path = defaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	g.cfg = cfg
	g.logger = logging.NewLoggerWithService(serviceName, logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}
