package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// SimplifyRequest is the JSON body accepted by POST /simplify.
type SimplifyRequest struct {
	ReportText string `json:"reportText" example:"Hemoglobin 10 g/dL (L) ref 12-16; WBC 7.1 x10^9/L"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Provider string `json:"provider,omitempty" example:"gemini"`
	Model    string `json:"model,omitempty" example:"gemini-2.5-flash"`
	Error    string `json:"error,omitempty"`
}
