package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// School is a tenant.
type School struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Verified bool               `bson:"verified" json:"verified"`
}

// Class belongs to a school. Section ids are only unique inside their class.
type Class struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID primitive.ObjectID `bson:"schoolId" json:"schoolId"`
	Name     string             `bson:"name" json:"name"`
	Sections []Section          `bson:"sections" json:"sections"`
}

type Section struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// NamedRef is a resolved id/name pair used in list views.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
