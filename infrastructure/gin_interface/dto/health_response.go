package dto

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type DetailedHealthResponse struct {
	OverallStatus string                   `json:"overall_status"`
	Timestamp     float64                  `json:"timestamp"`
	Services      map[string]ServiceStatus `json:"services"`
}
