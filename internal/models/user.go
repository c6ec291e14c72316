package models

// Role is the closed set of user roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Address is a postal address used for users and order delivery.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Preferences holds per-user notification and display flags.
type Preferences struct {
	Notifications bool `json:"notifications" bson:"notifications"`
	Marketing     bool `json:"marketing" bson:"marketing"`
	DarkMode      bool `json:"dark_mode" bson:"dark_mode"`
}

// DefaultPreferences are applied on registration.
func DefaultPreferences() Preferences {
	return Preferences{Notifications: true}
}

// User represents a customer or administrator account.
type User struct {
	BaseModel    `bson:",inline"`
	Name         string      `json:"name" bson:"name"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email" bson:"email"`
	Phone        string      `json:"phone" bson:"phone"`
	Role         Role        `gorm:"type:varchar(16);index;not null" json:"role" bson:"role"`
	Address      Address     `gorm:"embedded;embeddedPrefix:address_" json:"address" bson:"address"`
	Preferences  Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences" bson:"preferences"`
	PasswordHash string      `json:"-" bson:"hashed_password"`
	IsVerified   bool        `json:"is_verified" bson:"is_verified"`
	Avatar       string      `json:"avatar" bson:"avatar"`
	IsActive     bool        `gorm:"index" json:"is_active" bson:"is_active"`
}

// IsAdmin is the single authorization predicate for admin-only operations.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserUpdate is a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	Name        *string      `json:"name"`
	Phone       *string      `json:"phone"`
	Address     *Address     `json:"address"`
	Preferences *Preferences `json:"preferences"`
	Avatar      *string      `json:"avatar"`
}

// Apply merges the set fields of upd into u and reports whether anything changed.
func (upd UserUpdate) Apply(u *User) bool {
	changed := false
	changed = setIfPresent(&u.Name, upd.Name) || changed
	changed = setIfPresent(&u.Phone, upd.Phone) || changed
	changed = setIfPresent(&u.Address, upd.Address) || changed
	changed = setIfPresent(&u.Preferences, upd.Preferences) || changed
	changed = setIfPresent(&u.Avatar, upd.Avatar) || changed
	return changed
}
