package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"civil-defense-app/internal/api"
	apiconfig "civil-defense-app/internal/api/config"
	"civil-defense-app/internal/cli"
	"civil-defense-app/internal/mockbackend/mockbackendtest"
	"civil-defense-app/internal/session/adapter/persistence"
	sessionusecase "civil-defense-app/internal/session/usecase"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"

	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
	store   *sessionusecase.Store
	factory cli.AppFactory
}

func (s *CLITestSuite) SetupTest() {
	server, _ := mockbackendtest.NewServer(s.T())
	log := logger.NewNopLogger()

	store, err := sessionusecase.NewStore(context.Background(), persistence.NewMemoryBackend(), log)
	s.Require().NoError(err)
	module, err := api.NewAPIModule(&apiconfig.Config{BaseURL: server.URL}, store, log)
	s.Require().NoError(err)

	s.store = store
	s.factory = func(ctx context.Context) (*cli.App, func() error, error) {
		return &cli.App{
			Client: module.GetClient(),
			Store:  store,
			Guard:  sessionusecase.NewGuard(store, log),
		}, func() error { return nil }, nil
	}
}

func (s *CLITestSuite) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd(s.factory)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	_, err := cli.Execute(context.Background(), root)
	return stdout.String(), stderr.String(), err
}

func (s *CLITestSuite) login() {
	_, _, err := s.run("login", "--cedula", mockbackendtest.TestCedula, "--clave", mockbackendtest.TestClave)
	s.Require().NoError(err)
}

func (s *CLITestSuite) TestNews_PrintsRecords() {
	out, _, err := s.run("news")
	s.Require().NoError(err)

	var records []map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(out), &records))
	s.Require().NotEmpty(records)
	s.Equal("Huracán", records[0]["titulo"])
}

func (s *CLITestSuite) TestPublicLists() {
	for _, name := range []string{"services", "videos", "shelters", "members", "situations", "measures"} {
		out, _, err := s.run(name)
		s.Require().NoError(err, name)

		var records []map[string]interface{}
		s.NoError(json.Unmarshal([]byte(out), &records), name)
	}
}

func (s *CLITestSuite) TestHistory() {
	out, _, err := s.run("history")
	s.Require().NoError(err)
	s.Contains(out, "1966")
}

func (s *CLITestSuite) TestGuardedCommands_WithoutSession() {
	for _, args := range [][]string{
		{"news", "--members"},
		{"my-situations"},
		{"report", "--titulo", "t", "--descripcion", "d", "--lat", "18.4", "--lng", "-69.9"},
		{"change-password", "--actual", "a", "--nueva", "b"},
	} {
		_, stderr, err := s.run(args...)
		s.Require().Error(err, args)
		s.True(errors.IsNotAuthenticated(err), args)
		s.Contains(stderr, "dcctl login", args)
	}
}

func (s *CLITestSuite) TestLogin_InvalidCredentials() {
	_, _, err := s.run("login", "--cedula", mockbackendtest.TestCedula, "--clave", "wrong")
	s.Require().Error(err)
	s.Equal("Credenciales inválidas", errors.MessageOf(err))
	s.False(s.store.Current().IsAuthenticated())
}

func (s *CLITestSuite) TestLogin_ValidatesBeforeCalling() {
	_, _, err := s.run("login", "--cedula", mockbackendtest.TestCedula)
	s.Require().Error(err)
	s.True(errors.IsValidation(err))
}

func (s *CLITestSuite) TestSessionLifecycle() {
	s.login()
	s.True(s.store.Current().IsAuthenticated())

	out, _, err := s.run("whoami")
	s.Require().NoError(err)
	var who map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(out), &who))
	s.Equal(true, who["authenticated"])
	s.Equal("authenticated", who["state"])

	_, _, err = s.run("report", "--titulo", "Inundación", "--descripcion", "Calle anegada", "--lat", "18.47", "--lng", "-69.89")
	s.Require().NoError(err)

	out, _, err = s.run("my-situations")
	s.Require().NoError(err)
	s.Contains(out, "Inundación")

	_, _, err = s.run("news", "--members")
	s.Require().NoError(err)

	_, _, err = s.run("logout")
	s.Require().NoError(err)
	s.False(s.store.Current().IsAuthenticated())

	_, _, err = s.run("my-situations")
	s.True(errors.IsNotAuthenticated(err))
}

func (s *CLITestSuite) TestChangePassword() {
	s.login()

	_, _, err := s.run("change-password", "--actual", "nope", "--nueva", "otra")
	s.Require().Error(err)
	s.True(errors.IsAPI(err))

	out, _, err := s.run("change-password", "--actual", mockbackendtest.TestClave, "--nueva", "nueva123")
	s.Require().NoError(err)
	s.Contains(out, "Contraseña cambiada")
}

func (s *CLITestSuite) TestVolunteerAndRecover() {
	out, _, err := s.run("volunteer",
		"--nombre", "Ana Pérez", "--cedula", "00298765432", "--correo", "ana@example.do",
		"--telefono", "809-555-0101", "--direccion", "Santo Domingo")
	s.Require().NoError(err)
	s.Contains(out, "voluntario")

	_, _, err = s.run("recover-password")
	s.Require().Error(err)
	s.True(errors.IsValidation(err))

	_, _, err = s.run("recover-password", "--correo", "prueba@example.do")
	s.Require().NoError(err)
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}
