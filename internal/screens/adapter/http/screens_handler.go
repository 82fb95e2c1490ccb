package http

import (
	"context"
	"encoding/json"

	"civil-defense-app/internal/api/adapter/metrics"
	"civil-defense-app/internal/api/domain/client"
	"civil-defense-app/internal/api/domain/model"
	sessionmodel "civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Success messages shown after a form is accepted.
const (
	MsgLoginOK          = "Inicio de sesión exitoso."
	MsgLogoutOK         = "Sesión cerrada."
	MsgVolunteerOK      = "Solicitud de voluntario enviada exitosamente."
	MsgRecoveryOK       = "Se ha enviado un correo con las instrucciones para recuperar tu contraseña."
	MsgReportOK         = "Situación reportada exitosamente."
	MsgPasswordChangeOK = "Contraseña cambiada exitosamente."
	MsgInvalidBody      = "Solicitud inválida"
	MsgLoginRequired    = "Inicia sesión para continuar"
)

// SessionStore is the part of the session store the screens touch.
type SessionStore interface {
	Current() sessionmodel.Session
	Clear(ctx context.Context) error
}

// ScreensHTTPHandler exposes each app screen as a JSON route.
type ScreensHTTPHandler struct {
	client   client.CivilDefenseClient
	sessions SessionStore
	log      logger.Logger
}

// NewScreensHTTPHandler creates a new screens handler
func NewScreensHTTPHandler(c client.CivilDefenseClient, sessions SessionStore, log logger.Logger) *ScreensHTTPHandler {
	return &ScreensHTTPHandler{
		client:   c,
		sessions: sessions,
		log:      log.WithComponent("screens"),
	}
}

// SetupRoutes registers public screens, then member screens behind middleware.
func (h *ScreensHTTPHandler) SetupRoutes(router fiber.Router, middleware *SessionMiddleware) {
	router.Use(requestContext())

	router.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	router.Get("/session", h.Session)
	router.Get(middleware.loginPath, h.LoginScreen)
	router.Post(middleware.loginPath, h.Login)
	router.Post("/logout", h.Logout)

	router.Get("/services", h.list(h.client.FetchServices))
	router.Get("/news", h.list(h.client.FetchNews))
	router.Get("/videos", h.list(h.client.FetchVideos))
	router.Get("/shelters", h.list(h.client.FetchShelters))
	router.Get("/members", h.list(h.client.FetchMembers))
	router.Get("/situations", h.list(h.client.FetchSituations))
	router.Get("/preventive-measures", h.list(h.client.FetchPreventiveMeasures))
	router.Get("/about", h.raw(h.client.FetchAbout))
	router.Get("/history", h.raw(h.client.FetchHistory))
	router.Post("/volunteer", h.RegisterVolunteer)
	router.Post("/recover-password", h.RecoverPassword)

	guard := middleware.RequireSession()
	router.Get("/news/authenticated", guard, h.list(h.client.FetchAuthenticatedNews))
	router.Get("/my-situations", guard, h.list(h.client.FetchMySituations))
	router.Post("/report-situation", guard, h.ReportSituation)
	router.Post("/change-password", guard, h.ChangePassword)
}

func (h *ScreensHTTPHandler) fail(c *fiber.Ctx, err error) error {
	status := errors.StatusOf(err)
	h.log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"path":   c.Path(),
		"status": status,
		"error":  errors.MessageOf(err),
	}).Warn("Screen request failed")
	return c.Status(status).JSON(fiber.Map{
		"error": errors.MessageOf(err),
	})
}

// list serves a collection screen; a missing datos shows as an empty list.
func (h *ScreensHTTPHandler) list(fetch func(context.Context) (json.RawMessage, error)) fiber.Handler {
	return h.passThrough(fetch, json.RawMessage("[]"))
}

func (h *ScreensHTTPHandler) raw(fetch func(context.Context) (json.RawMessage, error)) fiber.Handler {
	return h.passThrough(fetch, json.RawMessage("null"))
}

func (h *ScreensHTTPHandler) passThrough(fetch func(context.Context) (json.RawMessage, error), empty json.RawMessage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := fetch(c.UserContext())
		if err != nil {
			return h.fail(c, err)
		}
		if data == nil {
			data = empty
		}
		return c.JSON(fiber.Map{"data": data})
	}
}

// parseForm decodes the body into form and runs its Validate.
func parseForm(c *fiber.Ctx, form interface{ Validate() error }) error {
	if err := c.BodyParser(form); err != nil {
		return errors.NewValidationError(MsgInvalidBody).WithCause(err)
	}
	return form.Validate()
}

// Session reports whether the user is logged in.
func (h *ScreensHTTPHandler) Session(c *fiber.Ctx) error {
	session := h.sessions.Current()
	return c.JSON(fiber.Map{
		"authenticated": session.IsAuthenticated(),
		"state":         session.State(),
		"userId":        session.UserID,
	})
}

// LoginScreen is where the guard sends anonymous users.
func (h *ScreensHTTPHandler) LoginScreen(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": MsgLoginRequired,
		"next":  c.Query("next"),
	})
}

// Login submits the credentials form.
func (h *ScreensHTTPHandler) Login(c *fiber.Ctx) error {
	var form model.Credentials
	if err := parseForm(c, &form); err != nil {
		return h.fail(c, err)
	}

	result, err := h.client.Login(c.UserContext(), form)
	if err != nil {
		return h.fail(c, err)
	}

	body := fiber.Map{"message": MsgLoginOK, "userId": result.UserID}
	if next := c.Query("next"); next != "" && next[0] == '/' {
		body["next"] = next
	}
	return c.JSON(body)
}

// Logout drops the session.
func (h *ScreensHTTPHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Clear(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": MsgLogoutOK})
}

// RegisterVolunteer submits the volunteer form.
func (h *ScreensHTTPHandler) RegisterVolunteer(c *fiber.Ctx) error {
	var form model.VolunteerApplication
	if err := parseForm(c, &form); err != nil {
		return h.fail(c, err)
	}
	data, err := h.client.RegisterVolunteer(c.UserContext(), form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": MsgVolunteerOK, "data": data})
}

// RecoverPassword submits the password recovery form.
func (h *ScreensHTTPHandler) RecoverPassword(c *fiber.Ctx) error {
	var form model.PasswordRecovery
	if err := parseForm(c, &form); err != nil {
		return h.fail(c, err)
	}
	if _, err := h.client.RecoverPassword(c.UserContext(), form); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": MsgRecoveryOK})
}

// ReportSituation submits an incident report.
func (h *ScreensHTTPHandler) ReportSituation(c *fiber.Ctx) error {
	var form model.SituationReport
	if err := parseForm(c, &form); err != nil {
		return h.fail(c, err)
	}
	data, err := h.client.ReportSituation(c.UserContext(), form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": MsgReportOK, "data": data})
}

// ChangePassword submits the password change form.
func (h *ScreensHTTPHandler) ChangePassword(c *fiber.Ctx) error {
	var form model.PasswordChange
	if err := parseForm(c, &form); err != nil {
		return h.fail(c, err)
	}
	if _, err := h.client.ChangePassword(c.UserContext(), form); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": MsgPasswordChangeOK})
}
