package forms

// LoginForm is the /login submission.
type LoginForm struct {
	Username   string `form:"username" validate:"required"`
	Password   string `form:"password" validate:"required"`
	RememberMe bool   `form:"remember_me"`
}

// Validate checks the required fields.
func (f *LoginForm) Validate() FieldErrors {
	return check(f)
}
