// Package model defines the records shared by the sign-up form and the user
// card: the three form fields, their values, the per-field touched flags and
// the UI flags toggled by user actions. The wire names (`name`, `email`,
// `password`) double as JSON keys and HTML input names so every layer can
// address a field with the same identifier.
package model
