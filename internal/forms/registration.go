package forms

import "context"

// RegistrationForm is the /register submission.
type RegistrationForm struct {
	Username  string `form:"username" validate:"required,max=64"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

// Validate checks field shapes, then username/email uniqueness against the
// store. The returned error reports a store failure, not invalid input.
func (f *RegistrationForm) Validate(ctx context.Context, checker UniquenessChecker) (FieldErrors, error) {
	fieldErrs := check(f)
	if !fieldErrs.Valid() {
		return fieldErrs, nil
	}

	taken, err := checker.UsernameTaken(ctx, f.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		fieldErrs.Add("username", "Please use a different username.")
	}

	taken, err = checker.EmailTaken(ctx, f.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		fieldErrs.Add("email", "Please use a different email address.")
	}

	return fieldErrs, nil
}
