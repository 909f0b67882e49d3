package request

// RegisterRequest is the body of POST /api/auth/register. JSON keys keep the
// column names of the usuarios table.
type RegisterRequest struct {
	Name      string `json:"nombre" validate:"required"`
	LastName  string `json:"apellido"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	BirthDate string `json:"fecha_nacimiento"`
	Phone     string `json:"telefono"`
	Address   string `json:"direccion"`
	City      string `json:"ciudad"`
	Country   string `json:"pais"`
}
