package menu

// User is the principal menus are rendered for.
type User interface {
	HasPerm(perm string) bool
	IsSuperuser() bool
}

// Permission decides whether a user may use an item.
// A nil Permission always allows.
type Permission interface {
	Allows(u User) bool
}

// StringPolicy delegates to User.HasPerm. The empty policy allows everybody.
type StringPolicy string

func (p StringPolicy) Allows(u User) bool {
	if p == "" {
		return true
	}
	return u != nil && u.HasPerm(string(p))
}

// PredicatePolicy is an arbitrary check on the user.
type PredicatePolicy func(u User) bool

func (p PredicatePolicy) Allows(u User) bool {
	if p == nil {
		return true
	}
	return u != nil && p(u)
}

// Superuser only allows superusers.
var Superuser = PredicatePolicy(func(u User) bool { return u.IsSuperuser() })

// Allowed evaluates p for u, treating nil as allowed.
func Allowed(p Permission, u User) bool {
	if p == nil {
		return true
	}
	return p.Allows(u)
}
