package httpclient

import (
	"encoding/json"

	"civil-defense-app/internal/shared/errors"

	"github.com/tidwall/gjson"
)

// Decode unwraps the {exito, mensaje, datos} envelope. On success it returns
// datos verbatim (nil when absent or null). Failures are API errors carrying
// mensaje, or defaultMessage when mensaje is missing or empty. A body that is
// not an envelope fails with defaultMessage and code MALFORMED_ENVELOPE.
func Decode(raw *RawResponse, defaultMessage string) (json.RawMessage, error) {
	if raw == nil {
		return nil, malformed(defaultMessage, 0, "")
	}

	var envelope gjson.Result
	wellFormed := gjson.ValidBytes(raw.Body)
	if wellFormed {
		envelope = gjson.ParseBytes(raw.Body)
		wellFormed = envelope.IsObject()
	}

	if !isSuccessStatus(raw.StatusCode) {
		message := defaultMessage
		if wellFormed {
			message = messageOr(envelope, defaultMessage)
		}
		return nil, errors.NewAPIError(message).
			WithCode(errors.CodeHTTPStatus).
			WithComponent("api_client").
			WithDetail("status", raw.StatusCode).
			WithDetail("request_id", raw.RequestID)
	}

	if !wellFormed {
		return nil, malformed(defaultMessage, raw.StatusCode, raw.RequestID)
	}

	exito := envelope.Get("exito")
	if exito.Type != gjson.True && exito.Type != gjson.False {
		return nil, malformed(defaultMessage, raw.StatusCode, raw.RequestID)
	}

	if !exito.Bool() {
		return nil, errors.NewAPIError(messageOr(envelope, defaultMessage)).
			WithCode(errors.CodeRejected).
			WithComponent("api_client").
			WithDetail("status", raw.StatusCode).
			WithDetail("request_id", raw.RequestID)
	}

	datos := envelope.Get("datos")
	if !datos.Exists() || datos.Type == gjson.Null {
		return nil, nil
	}
	return json.RawMessage(datos.Raw), nil
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

func messageOr(envelope gjson.Result, defaultMessage string) string {
	mensaje := envelope.Get("mensaje")
	if mensaje.Type == gjson.String && mensaje.Str != "" {
		return mensaje.Str
	}
	return defaultMessage
}

func malformed(defaultMessage string, status int, requestID string) *errors.AppError {
	return errors.NewAPIError(defaultMessage).
		WithCode(errors.CodeMalformedEnvelope).
		WithCause(errors.ErrMalformedEnvelope).
		WithComponent("api_client").
		WithDetail("status", status).
		WithDetail("request_id", requestID)
}
