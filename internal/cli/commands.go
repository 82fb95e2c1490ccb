package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"civil-defense-app/internal/api/domain/model"

	"github.com/spf13/cobra"
)

type rawFunc func(context.Context) (json.RawMessage, error)

var (
	emptyList = json.RawMessage("[]")
	emptyData = json.RawMessage("null")
)

// printData prints datos as sent, or empty when the backend sent none.
func printData(cmd *cobra.Command, data, empty json.RawMessage) error {
	if data == nil {
		data = empty
	}
	return printJSON(cmd.OutOrStdout(), data)
}

func newListCmd(rt *runtime, use, short string, pick func(*App) rawFunc) *cobra.Command {
	return newFetchCmd(rt, use, short, pick, emptyList)
}

func newRawCmd(rt *runtime, use, short string, pick func(*App) rawFunc) *cobra.Command {
	return newFetchCmd(rt, use, short, pick, emptyData)
}

func newFetchCmd(rt *runtime, use, short string, pick func(*App) rawFunc, empty json.RawMessage) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pick(rt.app)(cmd.Context())
			if err != nil {
				return err
			}
			return printData(cmd, data, empty)
		},
	}
}

func newNewsCmd(rt *runtime) *cobra.Command {
	var members bool
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Lista las noticias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch := rt.app.Client.FetchNews
			if members {
				if err := rt.requireSession(cmd); err != nil {
					return err
				}
				fetch = rt.app.Client.FetchAuthenticatedNews
			}
			data, err := fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printData(cmd, data, emptyList)
		},
	}
	cmd.Flags().BoolVar(&members, "members", false, "Noticias para miembros (requiere sesión)")
	return cmd
}

func newVolunteerCmd(rt *runtime) *cobra.Command {
	var form model.VolunteerApplication
	cmd := &cobra.Command{
		Use:   "volunteer",
		Short: "Envía una solicitud de voluntario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Validate(); err != nil {
				return err
			}
			if _, err := rt.app.Client.RegisterVolunteer(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Solicitud de voluntario enviada exitosamente.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Nombre, "nombre", "", "Nombre completo")
	cmd.Flags().StringVar(&form.Cedula, "cedula", "", "Cédula")
	cmd.Flags().StringVar(&form.Correo, "correo", "", "Correo electrónico")
	cmd.Flags().StringVar(&form.Telefono, "telefono", "", "Teléfono")
	cmd.Flags().StringVar(&form.Direccion, "direccion", "", "Dirección")
	return cmd
}

func newLoginCmd(rt *runtime) *cobra.Command {
	var form model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y guarda el token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Validate(); err != nil {
				return err
			}
			result, err := rt.app.Client.Login(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inicio de sesión exitoso. Usuario %s\n", result.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Cedula, "cedula", "", "Cédula")
	cmd.Flags().StringVar(&form.Clave, "clave", "", "Clave")
	return cmd
}

func newRecoverPasswordCmd(rt *runtime) *cobra.Command {
	var form model.PasswordRecovery
	cmd := &cobra.Command{
		Use:   "recover-password",
		Short: "Solicita instrucciones para recuperar la contraseña",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Validate(); err != nil {
				return err
			}
			if _, err := rt.app.Client.RecoverPassword(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Se ha enviado un correo con las instrucciones para recuperar tu contraseña.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Correo, "correo", "", "Correo electrónico")
	return cmd
}

func newReportCmd(rt *runtime) *cobra.Command {
	var form model.SituationReport
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporta una situación (requiere sesión)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd); err != nil {
				return err
			}
			if err := form.Validate(); err != nil {
				return err
			}
			if _, err := rt.app.Client.ReportSituation(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Situación reportada exitosamente.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Titulo, "titulo", "", "Título")
	cmd.Flags().StringVar(&form.Descripcion, "descripcion", "", "Descripción")
	cmd.Flags().StringVar(&form.Lat, "lat", "", "Latitud")
	cmd.Flags().StringVar(&form.Lng, "lng", "", "Longitud")
	return cmd
}

func newMySituationsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "my-situations",
		Short: "Lista tus situaciones reportadas (requiere sesión)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd); err != nil {
				return err
			}
			data, err := rt.app.Client.FetchMySituations(cmd.Context())
			if err != nil {
				return err
			}
			return printData(cmd, data, emptyList)
		},
	}
}

func newChangePasswordCmd(rt *runtime) *cobra.Command {
	var form model.PasswordChange
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Cambia tu contraseña (requiere sesión)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd); err != nil {
				return err
			}
			if err := form.Validate(); err != nil {
				return err
			}
			if _, err := rt.app.Client.ChangePassword(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contraseña cambiada exitosamente.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.ClaveAnterior, "actual", "", "Contraseña actual")
	cmd.Flags().StringVar(&form.ClaveNueva, "nueva", "", "Contraseña nueva")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.Store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada.")
			return nil
		},
	}
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el estado de la sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := rt.app.Store.Current()
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"authenticated": session.IsAuthenticated(),
				"state":         session.State(),
				"userId":        session.UserID,
			})
		},
	}
}
