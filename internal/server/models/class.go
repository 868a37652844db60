package models

// Class groups members around a shared set of books.
type Class struct {
	ID   string
	Name string
}

// ClassUser is the membership row linking a User to a Class. Permission is
// the per-class role and may differ from the user's global level; the pair
// (ClassID, UserID) is unique.
type ClassUser struct {
	ID         string
	ClassID    string
	UserID     string
	Permission Permission
}

// ClassMember is the joined roster projection of a membership.
type ClassMember struct {
	UserID          string
	Name            string
	Permission      Permission
	ClassPermission Permission
}
