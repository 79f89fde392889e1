package api

import "encoding/json"

// Envelope is the uniform reply shape every endpoint uses. Data stays raw so
// callers decode it into the type they expect.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// Err returns nil when the envelope reports success, or a KindDomain error
// carrying the server-supplied message otherwise.
func (e *Envelope) Err() error {
	if e.Success {
		return nil
	}
	return domainErr(e.Error)
}

// Data decodes the envelope payload into T. A missing payload on a successful
// envelope is a contract slip on the server side and decodes to the zero value.
func Data[T any](env *Envelope) (T, error) {
	var out T
	if err := env.Err(); err != nil {
		return out, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, decodeErr(0, err)
	}
	return out, nil
}
