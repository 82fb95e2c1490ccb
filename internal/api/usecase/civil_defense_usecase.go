package usecase

import (
	"context"
	"encoding/json"

	"civil-defense-app/internal/api/domain/client"
	"civil-defense-app/internal/api/domain/model"
	sessionmodel "civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"
	"civil-defense-app/internal/shared/utils"

	"github.com/tidwall/gjson"
)

// BackendCaller performs one request and unwraps its envelope.
type BackendCaller interface {
	Do(ctx context.Context, method, path string, body interface{}, defaultMessage string) (json.RawMessage, error)
}

// SessionWriter receives the session created by a successful login.
type SessionWriter interface {
	Set(ctx context.Context, session sessionmodel.Session) error
}

// CivilDefenseUsecase implements client.CivilDefenseClient on top of the
// HTTP client. Operations do not check the session themselves; whatever
// token the store holds is sent and the backend decides.
type CivilDefenseUsecase struct {
	backend  BackendCaller
	sessions SessionWriter
	log      logger.Logger
}

// NewCivilDefenseUsecase creates a new instance of CivilDefenseUsecase.
func NewCivilDefenseUsecase(backend BackendCaller, sessions SessionWriter, log logger.Logger) *CivilDefenseUsecase {
	return &CivilDefenseUsecase{
		backend:  backend,
		sessions: sessions,
		log:      log.WithComponent("civil_defense_usecase"),
	}
}

var _ client.CivilDefenseClient = (*CivilDefenseUsecase)(nil)

func (uc *CivilDefenseUsecase) call(ctx context.Context, ep endpoint, body interface{}) (json.RawMessage, error) {
	ctx = utils.WithOperation(ctx, ep.operation)
	return uc.backend.Do(ctx, ep.method, ep.path, body, ep.defaultMessage)
}

// list fetches a collection. datos is returned as sent; the records are not
// inspected here.
func (uc *CivilDefenseUsecase) list(ctx context.Context, ep endpoint) (json.RawMessage, error) {
	return uc.call(ctx, ep, nil)
}

func (uc *CivilDefenseUsecase) FetchServices(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchServicesEndpoint)
}

func (uc *CivilDefenseUsecase) FetchNews(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchNewsEndpoint)
}

func (uc *CivilDefenseUsecase) FetchAuthenticatedNews(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchAuthenticatedNewsEndpoint)
}

func (uc *CivilDefenseUsecase) FetchVideos(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchVideosEndpoint)
}

func (uc *CivilDefenseUsecase) FetchShelters(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchSheltersEndpoint)
}

func (uc *CivilDefenseUsecase) FetchMembers(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchMembersEndpoint)
}

func (uc *CivilDefenseUsecase) FetchSituations(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchSituationsEndpoint)
}

// FetchAbout returns the about content as sent by the backend.
func (uc *CivilDefenseUsecase) FetchAbout(ctx context.Context) (json.RawMessage, error) {
	return uc.call(ctx, fetchAboutEndpoint, nil)
}

// FetchHistory returns the institution's history as sent by the backend.
func (uc *CivilDefenseUsecase) FetchHistory(ctx context.Context) (json.RawMessage, error) {
	return uc.call(ctx, fetchHistoryEndpoint, nil)
}

func (uc *CivilDefenseUsecase) FetchPreventiveMeasures(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchPreventiveMeasuresEndpoint)
}

func (uc *CivilDefenseUsecase) RegisterVolunteer(ctx context.Context, application model.VolunteerApplication) (json.RawMessage, error) {
	return uc.call(ctx, registerVolunteerEndpoint, application)
}

// Login authenticates and, on success, stores token and user id together.
// A failed login leaves the session untouched.
func (uc *CivilDefenseUsecase) Login(ctx context.Context, credentials model.Credentials) (*model.LoginResult, error) {
	data, err := uc.call(ctx, loginEndpoint, credentials)
	if err != nil {
		return nil, err
	}

	result, cause := parseLoginResult(data)
	if cause != nil {
		uc.log.WithContext(utils.WithOperation(ctx, loginEndpoint.operation)).
			WithFields(map[string]interface{}{"error": cause.Error()}).
			Warn("Login succeeded without a usable session in datos")
		return nil, errors.NewAPIError(loginEndpoint.defaultMessage).
			WithCode(errors.CodeMalformedEnvelope).
			WithCause(cause).
			WithComponent("civil_defense_usecase")
	}

	session := sessionmodel.Session{Token: result.Token, UserID: result.UserID}
	if err := uc.sessions.Set(ctx, session); err != nil {
		return nil, err
	}

	uc.log.WithContext(utils.WithUserID(ctx, result.UserID)).Info("User logged in")
	return result, nil
}

// parseLoginResult reads datos.token and datos.user_id. Both must be present:
// the token as a non-empty string, the id as a number (kept in its literal
// form) or a non-empty string.
func parseLoginResult(data json.RawMessage) (*model.LoginResult, error) {
	if len(data) == 0 {
		return nil, errors.ErrMissingToken
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, errors.ErrMissingToken
	}

	token := parsed.Get("token")
	if token.Type != gjson.String || token.Str == "" {
		return nil, errors.ErrMissingToken
	}

	result := &model.LoginResult{Token: token.Str}
	switch userID := parsed.Get("user_id"); userID.Type {
	case gjson.String:
		result.UserID = userID.Str
	case gjson.Number:
		result.UserID = userID.Raw
	}
	if result.UserID == "" {
		return nil, errors.ErrMissingUserID
	}
	return result, nil
}

func (uc *CivilDefenseUsecase) RecoverPassword(ctx context.Context, request model.PasswordRecovery) (json.RawMessage, error) {
	return uc.call(ctx, recoverPasswordEndpoint, request)
}

func (uc *CivilDefenseUsecase) ReportSituation(ctx context.Context, report model.SituationReport) (json.RawMessage, error) {
	return uc.call(ctx, reportSituationEndpoint, report)
}

func (uc *CivilDefenseUsecase) FetchMySituations(ctx context.Context) (json.RawMessage, error) {
	return uc.list(ctx, fetchMySituationsEndpoint)
}

func (uc *CivilDefenseUsecase) ChangePassword(ctx context.Context, change model.PasswordChange) (json.RawMessage, error) {
	return uc.call(ctx, changePasswordEndpoint, change)
}
