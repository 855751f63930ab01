package models

// CurrentUser is the user a session acts as. It is either present or
// absent; the zero value is absent.
type CurrentUser struct {
	user    User
	present bool
}

// SomeUser returns a present CurrentUser holding u.
func SomeUser(u User) CurrentUser {
	return CurrentUser{user: u, present: true}
}

// NoUser returns an absent CurrentUser.
func NoUser() CurrentUser {
	return CurrentUser{}
}

// Get returns the user and whether one is present.
func (c CurrentUser) Get() (User, bool) {
	return c.user, c.present
}

// Present reports whether a user is loaded.
func (c CurrentUser) Present() bool {
	return c.present
}

// IDOr returns the user's id, or fallback when absent.
func (c CurrentUser) IDOr(fallback string) string {
	if !c.present {
		return fallback
	}
	return c.user.ID
}
