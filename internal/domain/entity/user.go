package entity

import "time"

// Roles de acceso. Cada rol de almacén opera exclusivamente sobre su sitio;
// Admin opera sobre los tres.
const (
	RoleAdmin         = "Admin"
	RoleAlmacenCedis  = "AlmacenCedis"
	RoleAlmacenAcuna  = "AlmacenAcuna"
	RoleAlmacenNld    = "AlmacenNld"
)

// User usuario del sistema. El acceso es por código (hasheado con bcrypt), no
// por email/contraseña.
type User struct {
	ID             int64     `db:"id"`
	AccessCodeHash string    `db:"access_code_hash"`
	Role           string    `db:"role"`
	Name           string    `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
}
