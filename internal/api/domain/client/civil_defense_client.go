package client

import (
	"context"
	"encoding/json"

	"civil-defense-app/internal/api/domain/model"
)

// CivilDefenseClient is the set of backend capabilities the screens use.
// Reads return datos exactly as the backend sent it, nil when absent or null.
// Every call reads the session at call time and attaches its token when one
// is held. Failures are *errors.AppError values whose Message is fit to show.
type CivilDefenseClient interface {
	FetchServices(ctx context.Context) (json.RawMessage, error)
	FetchNews(ctx context.Context) (json.RawMessage, error)
	FetchAuthenticatedNews(ctx context.Context) (json.RawMessage, error)
	FetchVideos(ctx context.Context) (json.RawMessage, error)
	FetchShelters(ctx context.Context) (json.RawMessage, error)
	FetchMembers(ctx context.Context) (json.RawMessage, error)
	FetchSituations(ctx context.Context) (json.RawMessage, error)
	FetchAbout(ctx context.Context) (json.RawMessage, error)
	FetchHistory(ctx context.Context) (json.RawMessage, error)
	FetchPreventiveMeasures(ctx context.Context) (json.RawMessage, error)
	RegisterVolunteer(ctx context.Context, application model.VolunteerApplication) (json.RawMessage, error)
	// Login stores the returned token and user id in the session on success.
	Login(ctx context.Context, credentials model.Credentials) (*model.LoginResult, error)
	RecoverPassword(ctx context.Context, request model.PasswordRecovery) (json.RawMessage, error)
	ReportSituation(ctx context.Context, report model.SituationReport) (json.RawMessage, error)
	FetchMySituations(ctx context.Context) (json.RawMessage, error)
	ChangePassword(ctx context.Context, change model.PasswordChange) (json.RawMessage, error)
}
