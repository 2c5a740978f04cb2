package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/model"
)

// valueFlags binds the three form fields to command flags.
type valueFlags struct {
	name     string
	email    string
	password string
}

func (v *valueFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&v.name, "name", "", "full name")
	flags.StringVar(&v.email, "email", "", "email address")
	flags.StringVar(&v.password, "password", "", "password")
}

func (v valueFlags) values() model.FormValues {
	return model.FormValues{
		Name:     v.name,
		Email:    v.email,
		Password: v.password,
	}
}
