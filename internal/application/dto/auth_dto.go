package dto

// LoginRequest body para POST /api/auth/login. El acceso es por código, no por
// usuario y contraseña: cada rol tiene su código.
type LoginRequest struct {
	AccessCode string `json:"codigoAcceso"`
}

// LoginResponse token emitido junto con la identidad resuelta.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"nombre"`
	Role  string `json:"rol"`
	Site  string `json:"sitio,omitempty"`
}
