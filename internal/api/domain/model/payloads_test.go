package model

import (
	"testing"

	"civil-defense-app/internal/shared/errors"

	"github.com/stretchr/testify/assert"
)

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{ Validate() error }
		wantMsg string
	}{
		{"credentials ok", Credentials{Cedula: "001", Clave: "x"}, ""},
		{"credentials blank clave", Credentials{Cedula: "001", Clave: "  "}, MsgIncompleteForm},
		{"volunteer ok", VolunteerApplication{"Ana", "001", "a@b.do", "809", "SD"}, ""},
		{"volunteer missing phone", VolunteerApplication{Nombre: "Ana", Cedula: "001", Correo: "a@b.do", Direccion: "SD"}, MsgIncompleteForm},
		{"recovery ok", PasswordRecovery{Correo: "a@b.do"}, ""},
		{"recovery empty", PasswordRecovery{}, MsgMissingEmail},
		{"report ok", SituationReport{"Inundación", "Calle anegada", "18.48", "-69.93"}, ""},
		{"report no coords", SituationReport{Titulo: "Inundación", Descripcion: "Calle anegada"}, MsgIncompleteForm},
		{"change ok", PasswordChange{ClaveAnterior: "a", ClaveNueva: "b"}, ""},
		{"change empty new", PasswordChange{ClaveAnterior: "a"}, MsgIncompleteForm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsValidation(err))
			assert.Equal(t, tt.wantMsg, errors.MessageOf(err))
		})
	}
}
