package seeder

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedAccount is a login account to create together with its profile.
type SeedAccount struct {
	Email      string
	Kind       models.Kind
	Name       string
	Section    int // index into DemoSchool.Sections, students only
	RollNumber string
}

// DemoSchool describes the tenant the demo accounts belong to.
type DemoSchool struct {
	Name     string
	Email    string
	Class    string
	Sections []string
	Accounts []SeedAccount
}

// GeneratedPassword stores an email and its generated password.
type GeneratedPassword struct {
	Email    string
	Password string
	Kind     models.Kind
}

// Demo is the school seeded by the seed command.
func Demo() DemoSchool {
	return DemoSchool{
		Name:     "Riverside School",
		Email:    "office@riverside.example",
		Class:    "Grade 6",
		Sections: []string{"6/1", "6/2"},
		Accounts: []SeedAccount{
			{Email: "root@schoolhub.example", Kind: models.KindSuperadmin, Name: "Platform Admin"},
			{Email: "office@riverside.example", Kind: models.KindSchool, Name: "Riverside School"},
			{Email: "registrar@riverside.example", Kind: models.KindAdminOffice, Name: "Registrar Somchai"},
			{Email: "malee@riverside.example", Kind: models.KindTeacher, Name: "Kru Malee"},
			{Email: "anong@riverside.example", Kind: models.KindStudent, Name: "Anong", Section: 0, RollNumber: "601"},
			{Email: "boon@riverside.example", Kind: models.KindStudent, Name: "Boon", Section: 0, RollNumber: "602"},
			{Email: "chai@riverside.example", Kind: models.KindStudent, Name: "Chai", Section: 1, RollNumber: "603"},
		},
	}
}

func generateRandomPassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	password := make([]byte, length)
	for i := range password {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		password[i] = charset[num.Int64()]
	}
	return string(password), nil
}

// SeedDemo creates the demo school, its class and sections, and every account that does not
// exist yet. Only newly created accounts are returned with their plain passwords.
func SeedDemo(ctx context.Context, db *mongo.Database, demo DemoSchool) ([]GeneratedPassword, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := db.Collection(database.UsersCollectionName)

	schoolID, err := upsertID(ctx, db.Collection(database.SchoolsCollectionName),
		bson.M{"email": demo.Email},
		bson.M{"name": demo.Name, "email": demo.Email, "verified": true})
	if err != nil {
		return nil, fmt.Errorf("seed school: %w", err)
	}

	sections := make([]models.Section, len(demo.Sections))
	for i, name := range demo.Sections {
		sections[i] = models.Section{ID: primitive.NewObjectID(), Name: name}
	}
	classes := db.Collection(database.ClassesCollectionName)
	classID, err := upsertID(ctx, classes,
		bson.M{"schoolId": schoolID, "name": demo.Class},
		bson.M{"schoolId": schoolID, "name": demo.Class, "sections": sections})
	if err != nil {
		return nil, fmt.Errorf("seed class: %w", err)
	}
	// reuse the stored section ids when the class already existed
	var class models.Class
	if err := classes.FindOne(ctx, bson.M{"_id": classID}).Decode(&class); err != nil {
		return nil, fmt.Errorf("reload class: %w", err)
	}

	logger.Log.Info("🌱 Starting seed process...", zap.String("school", demo.Name))

	var generated []GeneratedPassword
	for _, acc := range demo.Accounts {
		err := users.FindOne(ctx, bson.M{"email": acc.Email}).Err()
		if err == nil {
			logger.Log.Info("⏭️ User already exists, skipping", zap.String("email", acc.Email))
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("error checking existing user %s: %w", acc.Email, err)
		}

		plain, err := generateRandomPassword(12)
		if err != nil {
			return nil, fmt.Errorf("error generating password for %s: %w", acc.Email, err)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password for %s: %w", acc.Email, err)
		}

		refID, err := createProfile(ctx, db, acc, schoolID, &class)
		if err != nil {
			return nil, fmt.Errorf("error creating profile for %s: %w", acc.Email, err)
		}

		user := models.User{Email: acc.Email, Password: string(hashed), Role: string(acc.Kind), RefID: refID}
		if _, err := users.InsertOne(ctx, user); err != nil {
			return nil, fmt.Errorf("error creating user record for %s: %w", acc.Email, err)
		}
		logger.Log.Info("✅ Created user", zap.String("email", acc.Email), zap.String("kind", string(acc.Kind)))

		generated = append(generated, GeneratedPassword{Email: acc.Email, Password: plain, Kind: acc.Kind})
	}
	return generated, nil
}

func createProfile(ctx context.Context, db *mongo.Database, acc SeedAccount, schoolID primitive.ObjectID, class *models.Class) (primitive.ObjectID, error) {
	switch acc.Kind {
	case models.KindSuperadmin:
		return primitive.NilObjectID, nil
	case models.KindSchool:
		return schoolID, nil
	case models.KindAdminOffice, models.KindTeacher:
		return insertID(ctx, db.Collection(database.StaffCollectionName), models.Staff{
			SchoolID: schoolID, Name: acc.Name, Email: acc.Email,
		})
	case models.KindStudent:
		student := models.Student{SchoolID: schoolID, ClassID: &class.ID, Name: acc.Name, Email: acc.Email, RollNumber: acc.RollNumber}
		if acc.Section >= 0 && acc.Section < len(class.Sections) {
			student.SectionID = &class.Sections[acc.Section].ID
		}
		return insertID(ctx, db.Collection(database.StudentsCollectionName), student)
	}
	return primitive.NilObjectID, fmt.Errorf("unsupported kind %q", acc.Kind)
}

func insertID(ctx context.Context, col *mongo.Collection, doc interface{}) (primitive.ObjectID, error) {
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// upsertID inserts doc when nothing matches filter and returns the matching document's id.
func upsertID(ctx context.Context, col *mongo.Collection, filter, doc bson.M) (primitive.ObjectID, error) {
	var out struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := col.FindOneAndUpdate(ctx, filter, bson.M{"$setOnInsert": doc},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	return out.ID, err
}

// PrintGeneratedPasswords writes the new credentials; they cannot be recovered later.
func PrintGeneratedPasswords(w io.Writer, passwords []GeneratedPassword) {
	if len(passwords) == 0 {
		fmt.Fprintln(w, "ℹ️  No new users were created (all users already exist)")
		return
	}
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "🔐 GENERATED PASSWORDS FOR SEEDED USERS")
	fmt.Fprintln(w, "⚠️  Save these passwords now. Only their hashes are stored.")
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
	for _, p := range passwords {
		fmt.Fprintf(w, "📧 Email:    %s\n🔑 Password: %s\n👤 Kind:     %s\n", p.Email, p.Password, p.Kind)
		fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
	}
}
