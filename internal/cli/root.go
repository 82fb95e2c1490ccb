package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"civil-defense-app/internal/api/domain/client"
	sessionmodel "civil-defense-app/internal/session/domain/model"
	sessionusecase "civil-defense-app/internal/session/usecase"
	"civil-defense-app/internal/shared/errors"

	"github.com/spf13/cobra"
)

// SessionStore is the part of the session store the CLI touches.
type SessionStore interface {
	Current() sessionmodel.Session
	Clear(ctx context.Context) error
}

// App is what every command runs against.
type App struct {
	Client client.CivilDefenseClient
	Store  SessionStore
	Guard  *sessionusecase.Guard
}

// AppFactory builds the App before a command runs. The returned func
// releases whatever the App holds.
type AppFactory func(ctx context.Context) (*App, func() error, error)

type runtime struct {
	factory AppFactory
	app     *App
	closeFn func() error
}

func (r *runtime) open(cmd *cobra.Command) error {
	if r.app != nil {
		return nil
	}
	app, closeFn, err := r.factory(cmd.Context())
	if err != nil {
		return err
	}
	r.app, r.closeFn = app, closeFn
	return nil
}

func (r *runtime) close() error {
	if r.closeFn == nil {
		return nil
	}
	err := r.closeFn()
	r.app, r.closeFn = nil, nil
	return err
}

// wrap opens the App around run and releases it afterwards, also on error.
func (r *runtime) wrap(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := r.open(cmd); err != nil {
			return err
		}
		defer func() {
			if closeErr := r.close(); err == nil {
				err = closeErr
			}
		}()
		return run(cmd, args)
	}
}

// requireSession runs the guard and prints a login hint when it fails.
func (r *runtime) requireSession(cmd *cobra.Command) error {
	if _, err := r.app.Guard.RequireSession(cmd.Context()); err != nil {
		if errors.IsNotAuthenticated(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Esta acción requiere una sesión. Ejecuta: dcctl login --cedula <cédula> --clave <clave>")
		}
		return err
	}
	return nil
}

// NewRootCmd returns the dcctl command tree.
func NewRootCmd(factory AppFactory) *cobra.Command {
	rt := &runtime{factory: factory}

	root := &cobra.Command{
		Use:           "dcctl",
		Short:         "Cliente de línea de comandos de la Defensa Civil",
		Long:          "Consulta noticias, albergues, miembros y situaciones, y gestiona tu sesión con el backend de la Defensa Civil.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCmd(rt, "services", "Lista los servicios", func(a *App) rawFunc { return a.Client.FetchServices }),
		newNewsCmd(rt),
		newListCmd(rt, "videos", "Lista los videos", func(a *App) rawFunc { return a.Client.FetchVideos }),
		newListCmd(rt, "shelters", "Lista los albergues", func(a *App) rawFunc { return a.Client.FetchShelters }),
		newListCmd(rt, "members", "Lista los miembros", func(a *App) rawFunc { return a.Client.FetchMembers }),
		newListCmd(rt, "situations", "Lista las situaciones reportadas", func(a *App) rawFunc { return a.Client.FetchSituations }),
		newListCmd(rt, "measures", "Lista las medidas preventivas", func(a *App) rawFunc { return a.Client.FetchPreventiveMeasures }),
		newRawCmd(rt, "about", "Muestra la información de la institución", func(a *App) rawFunc { return a.Client.FetchAbout }),
		newRawCmd(rt, "history", "Muestra la historia de la institución", func(a *App) rawFunc { return a.Client.FetchHistory }),
		newVolunteerCmd(rt),
		newLoginCmd(rt),
		newRecoverPasswordCmd(rt),
		newReportCmd(rt),
		newMySituationsCmd(rt),
		newChangePasswordCmd(rt),
		newLogoutCmd(rt),
		newWhoamiCmd(rt),
	)

	for _, cmd := range root.Commands() {
		cmd.RunE = rt.wrap(cmd.RunE)
	}

	return root
}

// Execute runs the command tree and returns the message to print on failure.
func Execute(ctx context.Context, root *cobra.Command) (string, error) {
	if err := root.ExecuteContext(ctx); err != nil {
		return errors.MessageOf(err), err
	}
	return "", nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
