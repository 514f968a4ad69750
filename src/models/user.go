package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a login account. Role holds the principal kind explicitly and RefID points at
// the profile document (school, staff or student) the account belongs to.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Role     string             `bson:"role" json:"role"`
	RefID    primitive.ObjectID `bson:"refId" json:"refId"`
	Name     string             `bson:"-" json:"name"`
}
