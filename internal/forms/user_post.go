package forms

// UserPostForm is the new-post submission on the home page.
type UserPostForm struct {
	Body string `form:"body" validate:"required,min=1,max=140"`
}

// Validate checks the post body bounds.
func (f *UserPostForm) Validate() FieldErrors {
	return check(f)
}
