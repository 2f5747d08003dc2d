package validation

// Error is a bilingual validation failure. The storefront renders Bengali by
// default, so every user-facing validation message carries both variants.
type Error struct {
	EN string
	BD string
}

func (e *Error) Error() string {
	return e.EN
}

// Localized returns the message in the requested language, falling back to
// Bengali which is the storefront default.
func (e *Error) Localized(lang string) string {
	if lang == "en" {
		return e.EN
	}
	return e.BD
}

// NewError builds a bilingual validation error.
func NewError(en, bd string) *Error {
	return &Error{EN: en, BD: bd}
}
