package domain

// Principal is the authenticated identity of one browser session. Zero-valued
// fields are unset; the zero Principal is the anonymous one.
type Principal struct {
	Role     Role   `json:"role,omitempty"`
	Token    string `json:"token,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// IsAnonymous reports whether no field is set.
func (p Principal) IsAnonymous() bool {
	return p == Principal{}
}

// IsAuthenticated reports whether p is a complete authenticated record.
func (p Principal) IsAuthenticated() bool {
	return p.Token != "" && p.Validate() == nil
}

// Validate enforces token set ⇔ role and user id set. A username alone is
// never enough to count as authenticated, and an anonymous record must not
// carry one either.
func (p Principal) Validate() error {
	if p.Token == "" {
		if p.Role != RoleNone || p.UserID != 0 || p.Username != "" {
			return ErrPartialPrincipal
		}
		return nil
	}
	if !p.Role.IsSet() || p.UserID <= 0 {
		return ErrPartialPrincipal
	}
	return nil
}

// AccommodationContext is the guest house an owner or manager session works on.
// Name may lag ID: it is filled in lazily from the backend.
type AccommodationContext struct {
	ID   int64  `json:"accommodation_id,omitempty"`
	Name string `json:"accommodation_name,omitempty"`
}

func (a AccommodationContext) IsZero() bool {
	return a == AccommodationContext{}
}

// NeedsName reports whether the id is known but the display name is not.
func (a AccommodationContext) NeedsName() bool {
	return a.ID > 0 && a.Name == ""
}

// Validate rejects a name without an id.
func (a AccommodationContext) Validate() error {
	if a.ID < 0 || (a.ID == 0 && a.Name != "") {
		return ErrMalformedState
	}
	return nil
}
