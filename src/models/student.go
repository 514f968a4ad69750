package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Student นักเรียน
type Student struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SchoolID   primitive.ObjectID  `bson:"schoolId" json:"schoolId"`
	ClassID    *primitive.ObjectID `bson:"classId,omitempty" json:"classId,omitempty"`
	SectionID  *primitive.ObjectID `bson:"sectionId,omitempty" json:"sectionId,omitempty"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	RollNumber string              `bson:"rollNumber" json:"rollNumber"`
}

// Staff covers admin-office and teacher profiles.
type Staff struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID primitive.ObjectID `bson:"schoolId" json:"schoolId"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
}
