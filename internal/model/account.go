package model

// Account is a user of the clinic system.
type Account struct {
	ID       ID     `json:"id_usuario"`
	Name     string `json:"nombre"`
	Carnet   int64  `json:"carnet"`
	Email    string `json:"correo"`
	Password string `json:"clave"`
	Enabled  bool   `json:"habilitado"`
}

// PublicAccount is an Account without its password.
type PublicAccount struct {
	ID      ID     `json:"id_usuario"`
	Name    string `json:"nombre"`
	Carnet  int64  `json:"carnet"`
	Email   string `json:"correo"`
	Enabled bool   `json:"habilitado"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:      a.ID,
		Name:    a.Name,
		Carnet:  a.Carnet,
		Email:   a.Email,
		Enabled: a.Enabled,
	}
}

type UpdateAccountRequest struct {
	Name     *string `json:"nombre"`
	Carnet   *int64  `json:"carnet"`
	Email    *string `json:"correo"`
	Password *string `json:"clave"`
	Enabled  *bool   `json:"habilitado"`
}

// Apply merges the non-nil fields onto a. The id is never changed.
func (r UpdateAccountRequest) Apply(a *Account) {
	setString(&a.Name, r.Name)
	setString(&a.Email, r.Email)
	setString(&a.Password, r.Password)
	if r.Carnet != nil {
		a.Carnet = *r.Carnet
	}
	if r.Enabled != nil {
		a.Enabled = *r.Enabled
	}
}

type LoginRequest struct {
	Email    string `json:"correo" binding:"required"`
	Password string `json:"clave" binding:"required"`
}
