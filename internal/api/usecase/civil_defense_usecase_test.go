package usecase_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"civil-defense-app/internal/api/domain/model"
	"civil-defense-app/internal/api/usecase"
	sessionmodel "civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"
	"civil-defense-app/internal/shared/utils"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// Mock backend caller
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Do(ctx context.Context, method, path string, body interface{}, defaultMessage string) (json.RawMessage, error) {
	args := m.Called(ctx, method, path, body, defaultMessage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// Mock session writer
type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Set(ctx context.Context, session sessionmodel.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type CivilDefenseUsecaseTestSuite struct {
	suite.Suite
	ctx      context.Context
	backend  *mockBackend
	sessions *mockSessions
	uc       *usecase.CivilDefenseUsecase
}

func (s *CivilDefenseUsecaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = new(mockBackend)
	s.sessions = new(mockSessions)
	s.uc = usecase.NewCivilDefenseUsecase(s.backend, s.sessions, logger.NewNopLogger())
}

func (s *CivilDefenseUsecaseTestSuite) TearDownTest() {
	s.backend.AssertExpectations(s.T())
	s.sessions.AssertExpectations(s.T())
}

func withOperation(name string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		op, err := utils.GetOperationFromContext(ctx)
		return err == nil && op == name
	})
}

func (s *CivilDefenseUsecaseTestSuite) TestListOperations_RouteTable() {
	type listOp func(context.Context) (json.RawMessage, error)
	tests := []struct {
		name      string
		op        listOp
		operation string
		path      string
		message   string
	}{
		{"services", s.uc.FetchServices, "fetchServices", "/servicios", "Error al obtener servicios"},
		{"news", s.uc.FetchNews, "fetchNews", "/noticias", "Error al obtener noticias"},
		{"authenticated news", s.uc.FetchAuthenticatedNews, "fetchAuthenticatedNews", "/noticias_autenticado", "Error al obtener noticias autenticadas"},
		{"videos", s.uc.FetchVideos, "fetchVideos", "/videos", "Error al obtener videos"},
		{"shelters", s.uc.FetchShelters, "fetchShelters", "/albergues", "Error al obtener albergues"},
		{"members", s.uc.FetchMembers, "fetchMembers", "/miembros", "Error al obtener miembros"},
		{"situations", s.uc.FetchSituations, "fetchSituations", "/situaciones", "Error al obtener situaciones"},
		{"preventive measures", s.uc.FetchPreventiveMeasures, "fetchPreventiveMeasures", "/medidas_preventivas", "Error al obtener medidas preventivas"},
		{"my situations", s.uc.FetchMySituations, "fetchMySituations", "/mis_situaciones", "Error al obtener mis situaciones"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.backend.On("Do", withOperation(tt.operation), "GET", tt.path, nil, tt.message).
				Return(json.RawMessage(`[{"id":"1"},{"id":"2"}]`), nil).Once()

			data, err := tt.op(s.ctx)
			s.Require().NoError(err)
			s.JSONEq(`[{"id":"1"},{"id":"2"}]`, string(data))
		})
	}
}

func (s *CivilDefenseUsecaseTestSuite) TestList_NullDatosIsEmpty() {
	s.backend.On("Do", mock.Anything, "GET", "/videos", nil, "Error al obtener videos").
		Return(nil, nil).Once()

	data, err := s.uc.FetchVideos(s.ctx)
	s.NoError(err)
	s.Nil(data)
}

func (s *CivilDefenseUsecaseTestSuite) TestList_DatosPassedThroughAsSent() {
	for _, datos := range []string{
		`{"id":"1","nombre":"Albergue Central"}`,
		`["Albergue A","Albergue B"]`,
		`""`,
		`42`,
	} {
		s.backend.On("Do", mock.Anything, "GET", "/albergues", nil, "Error al obtener albergues").
			Return(json.RawMessage(datos), nil).Once()

		data, err := s.uc.FetchShelters(s.ctx)
		s.Require().NoError(err, datos)
		s.Equal(datos, string(data))
	}
}

func (s *CivilDefenseUsecaseTestSuite) TestList_PropagatesError() {
	apiErr := errors.NewAPIError("Servicio no disponible")
	s.backend.On("Do", mock.Anything, "GET", "/miembros", nil, "Error al obtener miembros").
		Return(nil, apiErr).Once()

	_, err := s.uc.FetchMembers(s.ctx)
	s.Same(apiErr, err)
}

func (s *CivilDefenseUsecaseTestSuite) TestAboutAndHistoryPassThrough() {
	s.backend.On("Do", withOperation("fetchAbout"), "GET", "/acerca", nil, "Error al obtener información de acerca").
		Return(json.RawMessage(`{"mision":"Proteger"}`), nil).Once()
	s.backend.On("Do", withOperation("fetchHistory"), "GET", "/historia", nil, "Error al obtener información de historia").
		Return(json.RawMessage(`"Fundada en 1966"`), nil).Once()

	about, err := s.uc.FetchAbout(s.ctx)
	s.Require().NoError(err)
	s.JSONEq(`{"mision":"Proteger"}`, string(about))

	history, err := s.uc.FetchHistory(s.ctx)
	s.Require().NoError(err)
	s.Equal(`"Fundada en 1966"`, string(history))
}

func (s *CivilDefenseUsecaseTestSuite) TestWriteOperations_SendPayloads() {
	volunteer := model.VolunteerApplication{Nombre: "Ana", Cedula: "001", Correo: "a@b.do", Telefono: "809", Direccion: "SD"}
	recovery := model.PasswordRecovery{Correo: "a@b.do"}
	report := model.SituationReport{Titulo: "Inundación", Descripcion: "Calle anegada", Lat: "18.48", Lng: "-69.93"}
	change := model.PasswordChange{ClaveAnterior: "vieja", ClaveNueva: "nueva"}

	s.backend.On("Do", withOperation("registerVolunteer"), "POST", "/registrar_voluntario", volunteer, "Error al registrar voluntario").
		Return(json.RawMessage(`{"id":5}`), nil).Once()
	s.backend.On("Do", withOperation("recoverPassword"), "POST", "/recuperar_contrasena", recovery, "Error al recuperar contraseña").
		Return(nil, nil).Once()
	s.backend.On("Do", withOperation("reportSituation"), "POST", "/reportar_situacion", report, "Error al reportar situación").
		Return(json.RawMessage(`{"id":"abc"}`), nil).Once()
	s.backend.On("Do", withOperation("changePassword"), "POST", "/cambiar_clave", change, "Error al cambiar contraseña").
		Return(nil, nil).Once()

	data, err := s.uc.RegisterVolunteer(s.ctx, volunteer)
	s.NoError(err)
	s.JSONEq(`{"id":5}`, string(data))

	data, err = s.uc.RecoverPassword(s.ctx, recovery)
	s.NoError(err)
	s.Nil(data)

	_, err = s.uc.ReportSituation(s.ctx, report)
	s.NoError(err)

	_, err = s.uc.ChangePassword(s.ctx, change)
	s.NoError(err)
}

func (s *CivilDefenseUsecaseTestSuite) TestLogin_StoresSession() {
	creds := model.Credentials{Cedula: "00112345678", Clave: "secreta"}
	s.backend.On("Do", withOperation("login"), "POST", "/iniciar_sesion", creds, "Error al iniciar sesión").
		Return(json.RawMessage(`{"token":"abc123","user_id":42,"nombre":"Ana"}`), nil).Once()
	s.sessions.On("Set", mock.Anything, sessionmodel.Session{Token: "abc123", UserID: "42"}).Return(nil).Once()

	result, err := s.uc.Login(s.ctx, creds)
	s.Require().NoError(err)
	s.Equal("abc123", result.Token)
	s.Equal("42", result.UserID)
}

func (s *CivilDefenseUsecaseTestSuite) TestLogin_StringUserID() {
	creds := model.Credentials{Cedula: "1", Clave: "2"}
	s.backend.On("Do", mock.Anything, "POST", "/iniciar_sesion", creds, "Error al iniciar sesión").
		Return(json.RawMessage(`{"token":"t","user_id":"u-7"}`), nil).Once()
	s.sessions.On("Set", mock.Anything, sessionmodel.Session{Token: "t", UserID: "u-7"}).Return(nil).Once()

	result, err := s.uc.Login(s.ctx, creds)
	s.Require().NoError(err)
	s.Equal("u-7", result.UserID)
}

func (s *CivilDefenseUsecaseTestSuite) TestLogin_RejectedNeverWritesSession() {
	creds := model.Credentials{Cedula: "1", Clave: "mala"}
	s.backend.On("Do", mock.Anything, "POST", "/iniciar_sesion", creds, "Error al iniciar sesión").
		Return(nil, errors.NewAPIError("Credenciales inválidas")).Once()

	result, err := s.uc.Login(s.ctx, creds)
	s.Nil(result)
	s.Require().Error(err)
	s.Equal("Credenciales inválidas", err.Error())
	s.sessions.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything)
}

func (s *CivilDefenseUsecaseTestSuite) TestLogin_MissingToken() {
	for _, datos := range []string{`{"user_id":1}`, `{"token":""}`, `{"token":12}`, `[]`} {
		creds := model.Credentials{Cedula: "1", Clave: datos}
		s.backend.On("Do", mock.Anything, "POST", "/iniciar_sesion", creds, "Error al iniciar sesión").
			Return(json.RawMessage(datos), nil).Once()

		_, err := s.uc.Login(s.ctx, creds)
		s.Require().Error(err, datos)
		s.True(errors.IsAPI(err))
		s.Equal("Error al iniciar sesión", err.Error())
		s.True(stderrors.Is(err, errors.ErrMissingToken))
	}

	creds := model.Credentials{Cedula: "1", Clave: "null"}
	s.backend.On("Do", mock.Anything, "POST", "/iniciar_sesion", creds, "Error al iniciar sesión").
		Return(nil, nil).Once()
	_, err := s.uc.Login(s.ctx, creds)
	s.True(errors.IsAPI(err))

	s.sessions.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything)
}

func (s *CivilDefenseUsecaseTestSuite) TestLogin_MissingUserID() {
	for _, datos := range []string{
		`{"token":"abc"}`,
		`{"token":"abc","user_id":null}`,
		`{"token":"abc","user_id":""}`,
		`{"token":"abc","user_id":{"id":1}}`,
		`{"token":"abc","user_id":true}`,
	} {
		creds := model.Credentials{Cedula: "1", Clave: datos}
		s.backend.On("Do", mock.Anything, "POST", "/iniciar_sesion", creds, "Error al iniciar sesión").
			Return(json.RawMessage(datos), nil).Once()

		result, err := s.uc.Login(s.ctx, creds)
		s.Nil(result, datos)
		s.Require().Error(err, datos)
		s.True(errors.IsAPI(err))
		s.True(errors.IsMalformedEnvelope(err))
		s.Equal("Error al iniciar sesión", err.Error())
		s.True(stderrors.Is(err, errors.ErrMissingUserID))
	}

	s.sessions.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything)
}

func (s *CivilDefenseUsecaseTestSuite) TestLogin_SessionWriteFailure() {
	creds := model.Credentials{Cedula: "1", Clave: "2"}
	s.backend.On("Do", mock.Anything, "POST", "/iniciar_sesion", creds, "Error al iniciar sesión").
		Return(json.RawMessage(`{"token":"t","user_id":1}`), nil).Once()
	s.sessions.On("Set", mock.Anything, mock.Anything).
		Return(errors.NewInfrastructureError("failed to persist session")).Once()

	result, err := s.uc.Login(s.ctx, creds)
	s.Nil(result)
	s.Error(err)
}

func TestCivilDefenseUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(CivilDefenseUsecaseTestSuite))
}
