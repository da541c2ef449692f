package types

// SuccessEnvelope wraps every successful report payload. Dashboards key off
// the top-level "data" field regardless of the metric shape inside.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a typed error: a stable machine code, a
// human-readable message, and optional structured details (per-field
// validation errors, dependency names).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
