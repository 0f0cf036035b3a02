package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Admin models a catalog administrator. Admins and users live in
// disjoint namespaces: an admin and a user may share a username.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// User models a marketplace customer. PurchasedCourses holds plain
// course-id strings with set semantics: append-only, no duplicates,
// and entries survive deletion of the course itself.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	PurchasedCourses []string  `json:"purchased_courses"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasPurchased reports whether courseID is already owned by the user.
func (u *User) HasPurchased(courseID string) bool {
	for _, id := range u.PurchasedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}
