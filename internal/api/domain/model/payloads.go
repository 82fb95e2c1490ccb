package model

import (
	"strings"

	"civil-defense-app/internal/shared/errors"
)

// Messages shown when a form is submitted incomplete.
const (
	MsgIncompleteForm = "Por favor, completa todos los campos."
	MsgMissingEmail   = "Por favor, ingresa tu correo electrónico."
)

// Credentials is the login form.
type Credentials struct {
	Cedula string `json:"cedula"`
	Clave  string `json:"clave"`
}

// VolunteerApplication is the volunteer registration form.
type VolunteerApplication struct {
	Nombre    string `json:"nombre"`
	Cedula    string `json:"cedula"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// PasswordRecovery asks the backend to mail recovery instructions.
type PasswordRecovery struct {
	Correo string `json:"correo"`
}

// SituationReport is an incident reported by a logged-in user.
// Coordinates travel as strings, the way the form captures them.
type SituationReport struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
}

// PasswordChange replaces the current password.
type PasswordChange struct {
	ClaveAnterior string `json:"clave_anterior"`
	ClaveNueva    string `json:"clave_nueva"`
}

func allPresent(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

func incomplete() error {
	return errors.NewValidationError(MsgIncompleteForm)
}

func (c Credentials) Validate() error {
	if !allPresent(c.Cedula, c.Clave) {
		return incomplete()
	}
	return nil
}

func (v VolunteerApplication) Validate() error {
	if !allPresent(v.Nombre, v.Cedula, v.Correo, v.Telefono, v.Direccion) {
		return incomplete()
	}
	return nil
}

func (p PasswordRecovery) Validate() error {
	if !allPresent(p.Correo) {
		return errors.NewValidationError(MsgMissingEmail)
	}
	return nil
}

func (s SituationReport) Validate() error {
	if !allPresent(s.Titulo, s.Descripcion, s.Lat, s.Lng) {
		return incomplete()
	}
	return nil
}

func (p PasswordChange) Validate() error {
	if !allPresent(p.ClaveAnterior, p.ClaveNueva) {
		return incomplete()
	}
	return nil
}
