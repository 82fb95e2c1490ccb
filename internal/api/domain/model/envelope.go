package model

import "encoding/json"

// Envelope is the wrapper every backend response uses.
type Envelope struct {
	Success bool            `json:"exito"`
	Message string          `json:"mensaje,omitempty"`
	Data    json.RawMessage `json:"datos,omitempty"`
}

// LoginResult is what a successful login stores in the session.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
