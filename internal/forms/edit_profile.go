package forms

import "context"

// EditProfileForm is the /edit_profile submission.
// OriginalUsername is set by the handler from the current user, never bound
// from the request: keeping one's own username must not count as a collision.
type EditProfileForm struct {
	Username string `form:"username" validate:"required,max=64"`
	AboutMe  string `form:"about_me" validate:"max=140"`

	OriginalUsername string `form:"-"`
}

// Validate checks field shapes, then that a renamed username is not taken.
func (f *EditProfileForm) Validate(ctx context.Context, checker UniquenessChecker) (FieldErrors, error) {
	fieldErrs := check(f)
	if !fieldErrs.Valid() {
		return fieldErrs, nil
	}

	if f.Username != f.OriginalUsername {
		taken, err := checker.UsernameTaken(ctx, f.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			fieldErrs.Add("username", "Please use a different username.")
		}
	}

	return fieldErrs, nil
}
