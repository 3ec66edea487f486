package dto

// PermissionsResponse lists the grants of the calling user's role
type PermissionsResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// PermissionCheckResponse answers a single permission lookup
type PermissionCheckResponse struct {
	Role       string `json:"role"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

// HealthResponse reports the state of the service dependencies
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}
