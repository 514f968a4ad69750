package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLogins = 5
	lockoutWindow   = 15 * time.Minute
)

var (
	ErrAccountNotFound = errors.New("account not found")
	// ErrTooManyAttempts is returned while an email is locked out after repeated failures.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// Accounts looks up login accounts and the profiles they point at.
type Accounts interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindSchool(ctx context.Context, id primitive.ObjectID) (*models.School, error)
	FindStaff(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	FindStudent(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expiresIn"`
	Name      string           `json:"name"`
	Principal models.Principal `json:"user"`
}

type Service struct {
	accounts Accounts
	redis    *redis.Client
	ttl      time.Duration
}

// NewService builds the auth service. A nil redis client disables login throttling.
func NewService(accounts Accounts, rdb *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{accounts: accounts, redis: rdb, ttl: ttl}
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.BadRequest("Email and password are required")
	}
	if s.lockedOut(ctx, email) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.accounts.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			s.recordFailure(ctx, email)
			return nil, utils.Unauthorized("Invalid email or password")
		}
		return nil, utils.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordFailure(ctx, email)
		return nil, utils.Unauthorized("Invalid email or password")
	}

	res, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.clearFailures(ctx, email)

	logger.Log.Info("🔐 login", zap.String("email", email), zap.String("kind", string(res.Principal.Kind)))
	return res, nil
}

// issue signs a token for an authenticated account.
func (s *Service) issue(ctx context.Context, user *models.User) (*LoginResult, error) {
	principal, name, err := s.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := utils.GenerateJWT(principal, s.ttl)
	if err != nil {
		return nil, utils.Internal(fmt.Errorf("sign token: %w", err))
	}
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.ttl.Seconds()),
		Name:      name,
		Principal: principal,
	}, nil
}

// resolve turns the account's explicit role and its profile into a principal.
func (s *Service) resolve(ctx context.Context, u *models.User) (models.Principal, string, error) {
	kind, ok := models.ParseKind(u.Role)
	if !ok {
		return models.Principal{}, "", utils.Forbidden("Account role %q is not supported", u.Role)
	}
	p := models.Principal{Kind: kind, ID: u.RefID.Hex(), Email: u.Email}

	switch kind {
	case models.KindSuperadmin:
		p.ID = u.ID.Hex()
		return p, u.Name, nil
	case models.KindSchool:
		school, err := s.accounts.FindSchool(ctx, u.RefID)
		if err != nil {
			return models.Principal{}, "", profileError(err)
		}
		p.SchoolID = school.ID.Hex()
		return p, school.Name, nil
	case models.KindAdminOffice, models.KindTeacher:
		staff, err := s.accounts.FindStaff(ctx, u.RefID)
		if err != nil {
			return models.Principal{}, "", profileError(err)
		}
		p.SchoolID = staff.SchoolID.Hex()
		return p, staff.Name, nil
	default:
		student, err := s.accounts.FindStudent(ctx, u.RefID)
		if err != nil {
			return models.Principal{}, "", profileError(err)
		}
		p.SchoolID = student.SchoolID.Hex()
		if student.ClassID != nil {
			p.ClassID = student.ClassID.Hex()
		}
		if student.SectionID != nil {
			p.SectionID = student.SectionID.Hex()
		}
		return p, student.Name, nil
	}
}

func profileError(err error) error {
	if errors.Is(err, ErrAccountNotFound) {
		return utils.Forbidden("Account profile is missing")
	}
	return utils.Internal(err)
}

// Logout revokes token until it expires.
func (s *Service) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if err := utils.BlacklistToken(ctx, token, time.Until(expiresAt)); err != nil {
		return utils.Internal(err)
	}
	return nil
}

func failuresKey(email string) string {
	return "login:failures:" + email
}

func (s *Service) lockedOut(ctx context.Context, email string) bool {
	if s.redis == nil {
		return false
	}
	n, err := s.redis.Get(ctx, failuresKey(email)).Int()
	if err != nil {
		return false
	}
	return n >= maxFailedLogins
}

func (s *Service) recordFailure(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	pipe := s.redis.TxPipeline()
	pipe.Incr(ctx, failuresKey(email))
	pipe.Expire(ctx, failuresKey(email), lockoutWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("record failed login", zap.String("email", email), zap.Error(err))
	}
}

func (s *Service) clearFailures(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, failuresKey(email))
}

// RetryAfter is how long email stays locked out.
func (s *Service) RetryAfter(ctx context.Context, email string) time.Duration {
	if s.redis == nil {
		return 0
	}
	ttl, err := s.redis.TTL(ctx, failuresKey(strings.ToLower(strings.TrimSpace(email)))).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}
