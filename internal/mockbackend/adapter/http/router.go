package http

import (
	"errors"

	apimodel "civil-defense-app/internal/api/domain/model"
	"civil-defense-app/internal/mockbackend/adapter/persistence"
	"civil-defense-app/internal/mockbackend/adapter/security"
	"civil-defense-app/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Messages the backend answers with.
const (
	MsgInvalidBody          = "Solicitud inválida"
	MsgMissingFields        = "Todos los campos son obligatorios"
	MsgInvalidCredentials   = "Credenciales inválidas"
	MsgTokenRequired        = "Debe iniciar sesión"
	MsgTokenInvalid         = "Token inválido o expirado"
	MsgVolunteerExists      = "Ya existe una solicitud con esa cédula"
	MsgVolunteerRegistered  = "Solicitud de voluntario registrada"
	MsgRecoverySent         = "Si el correo está registrado recibirá instrucciones"
	MsgSituationReported    = "Situación reportada"
	MsgWrongCurrentPassword = "La clave anterior es incorrecta"
	MsgPasswordChanged      = "Clave cambiada correctamente"
	MsgNotFound             = "Recurso no encontrado"
	MsgInternal             = "Error interno del servidor"
)

// envelope is the wire wrapper of every answer.
type envelope struct {
	Exito   bool        `json:"exito"`
	Mensaje string      `json:"mensaje,omitempty"`
	Datos   interface{} `json:"datos,omitempty"`
}

func ok(c *fiber.Ctx, mensaje string, datos interface{}) error {
	return c.JSON(envelope{Exito: true, Mensaje: mensaje, Datos: datos})
}

func fail(c *fiber.Ctx, status int, mensaje string) error {
	return c.Status(status).JSON(envelope{Exito: false, Mensaje: mensaje})
}

// BackendHTTPHandler serves the civil-defense wire contract.
type BackendHTTPHandler struct {
	store  *persistence.MemoryStore
	tokens *security.TokenService
	log    logger.Logger
}

// NewBackendHTTPHandler creates the handler set.
func NewBackendHTTPHandler(store *persistence.MemoryStore, tokens *security.TokenService, log logger.Logger) *BackendHTTPHandler {
	return &BackendHTTPHandler{
		store:  store,
		tokens: tokens,
		log:    log.WithComponent("mock_backend"),
	}
}

// SetupRoutes registers public and member routes.
func (h *BackendHTTPHandler) SetupRoutes(router fiber.Router, middleware *AuthMiddleware) {
	router.Get("/servicios", h.catalog(persistence.CatalogServices))
	router.Get("/noticias", h.catalog(persistence.CatalogNews))
	router.Get("/videos", h.catalog(persistence.CatalogVideos))
	router.Get("/albergues", h.catalog(persistence.CatalogShelters))
	router.Get("/miembros", h.catalog(persistence.CatalogMembers))
	router.Get("/medidas_preventivas", h.catalog(persistence.CatalogPreventiveMeasures))
	router.Get("/situaciones", h.Situations)
	router.Get("/acerca", h.About)
	router.Get("/historia", h.History)
	router.Post("/registrar_voluntario", h.RegisterVolunteer)
	router.Post("/iniciar_sesion", h.Login)
	router.Post("/recuperar_contrasena", h.RecoverPassword)

	protect := middleware.Protect()
	router.Get("/noticias_autenticado", protect, h.catalog(persistence.CatalogMemberNews))
	router.Post("/reportar_situacion", protect, h.ReportSituation)
	router.Get("/mis_situaciones", protect, h.MySituations)
	router.Post("/cambiar_clave", protect, h.ChangePassword)
}

func (h *BackendHTTPHandler) catalog(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return ok(c, "", h.store.Catalog(name))
	}
}

// Situations lists every reported situation.
func (h *BackendHTTPHandler) Situations(c *fiber.Ctx) error {
	return ok(c, "", h.store.Situations())
}

// About returns mission, vision and values.
func (h *BackendHTTPHandler) About(c *fiber.Ctx) error {
	return ok(c, "", h.store.About())
}

// History returns the history text.
func (h *BackendHTTPHandler) History(c *fiber.Ctx) error {
	return ok(c, "", h.store.History())
}

// RegisterVolunteer stores a volunteer application. Form problems are
// business failures: 200 with exito=false.
func (h *BackendHTTPHandler) RegisterVolunteer(c *fiber.Ctx) error {
	var req apimodel.VolunteerApplication
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	if err := req.Validate(); err != nil {
		return fail(c, fiber.StatusOK, MsgMissingFields)
	}

	volunteer, err := h.store.AddVolunteer(persistence.Volunteer{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Correo:    req.Correo,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
	})
	if errors.Is(err, persistence.ErrVolunteerExists) {
		return fail(c, fiber.StatusOK, MsgVolunteerExists)
	}
	if err != nil {
		return err
	}
	return ok(c, MsgVolunteerRegistered, volunteer)
}

// Login checks cedula and clave and issues a token.
func (h *BackendHTTPHandler) Login(c *fiber.Ctx) error {
	var req apimodel.Credentials
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	if err := req.Validate(); err != nil {
		return fail(c, fiber.StatusOK, MsgMissingFields)
	}

	user, err := h.store.Authenticate(req.Cedula, req.Clave)
	if err != nil {
		h.log.WithFields(map[string]interface{}{"cedula": req.Cedula}).Info("Login rejected")
		return fail(c, fiber.StatusOK, MsgInvalidCredentials)
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Cedula)
	if err != nil {
		return err
	}

	h.log.WithFields(map[string]interface{}{"user_id": user.ID}).Info("Login accepted")
	return ok(c, "", fiber.Map{
		"token":   token,
		"user_id": user.ID,
		"nombre":  user.Nombre,
		"correo":  user.Correo,
	})
}

// RecoverPassword always answers the same way so it cannot be used to test
// for registered addresses.
func (h *BackendHTTPHandler) RecoverPassword(c *fiber.Ctx) error {
	var req apimodel.PasswordRecovery
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	if err := req.Validate(); err != nil {
		return fail(c, fiber.StatusOK, MsgMissingFields)
	}

	h.log.WithFields(map[string]interface{}{"known": h.store.HasEmail(req.Correo)}).Info("Password recovery requested")
	return ok(c, MsgRecoverySent, nil)
}

// ReportSituation stores an incident for the caller.
func (h *BackendHTTPHandler) ReportSituation(c *fiber.Ctx) error {
	userID, found := userIDFrom(c)
	if !found {
		return fail(c, fiber.StatusUnauthorized, MsgTokenRequired)
	}

	var req apimodel.SituationReport
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	if err := req.Validate(); err != nil {
		return fail(c, fiber.StatusOK, MsgMissingFields)
	}

	situation := h.store.AddSituation(persistence.Situation{
		UserID:      userID,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Lat:         req.Lat,
		Lng:         req.Lng,
	})
	return ok(c, MsgSituationReported, situation)
}

// MySituations lists the caller's reports.
func (h *BackendHTTPHandler) MySituations(c *fiber.Ctx) error {
	userID, found := userIDFrom(c)
	if !found {
		return fail(c, fiber.StatusUnauthorized, MsgTokenRequired)
	}
	return ok(c, "", h.store.SituationsByUser(userID))
}

// ChangePassword replaces the caller's password.
func (h *BackendHTTPHandler) ChangePassword(c *fiber.Ctx) error {
	userID, found := userIDFrom(c)
	if !found {
		return fail(c, fiber.StatusUnauthorized, MsgTokenRequired)
	}

	var req apimodel.PasswordChange
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	if err := req.Validate(); err != nil {
		return fail(c, fiber.StatusOK, MsgMissingFields)
	}

	switch err := h.store.ChangePassword(userID, req.ClaveAnterior, req.ClaveNueva); {
	case errors.Is(err, persistence.ErrWrongPassword):
		return fail(c, fiber.StatusOK, MsgWrongCurrentPassword)
	case errors.Is(err, persistence.ErrUserNotFound):
		return fail(c, fiber.StatusUnauthorized, MsgTokenInvalid)
	case err != nil:
		return err
	}
	return ok(c, MsgPasswordChanged, nil)
}

// ErrorHandler answers unhandled errors with an envelope.
func (h *BackendHTTPHandler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return fail(c, fiber.StatusNotFound, MsgNotFound)
		}
		return fail(c, fe.Code, fe.Message)
	}
	h.log.WithFields(map[string]interface{}{
		"path":  c.Path(),
		"error": err.Error(),
	}).Error("Unhandled error")
	return fail(c, fiber.StatusInternalServerError, MsgInternal)
}
