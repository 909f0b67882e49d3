package repository

import "accountsapi/internal/core/domain"

const usersTable = "usuarios"

var userColumns = []string{
	"nombre",
	"apellido",
	"email",
	"password_hash",
	"fecha_nacimiento",
	"telefono",
	"direccion",
	"ciudad",
	"pais",
	"activo",
}

func userValues(user domain.User) []any {
	return []any{
		user.Name,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.BirthDate,
		user.Phone,
		user.Address,
		user.City,
		user.Country,
		user.Active,
	}
}
