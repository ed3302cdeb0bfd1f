// Package authService implements registration, login and self-service
// profile management.
package authService

import (
	"context"
	"dormaid/models"
	"dormaid/utils"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// registerNumberPattern is two digits, three letters, four digits (e.g. 23MIS0145).
var registerNumberPattern = regexp.MustCompile(`^[0-9]{2}[A-Za-z]{3}[0-9]{4}$`)

// MinPasswordLength applies to new passwords set through ChangePassword.
const MinPasswordLength = 6

// ValidRegisterNumber reports whether s is a well-formed student register number.
func ValidRegisterNumber(s string) bool {
	return registerNumberPattern.MatchString(s)
}

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	IssueToken(userID uint) (string, error)
}

type Service struct {
	db        *gorm.DB
	tokens    TokenIssuer
	saltRound int
}

func New(db *gorm.DB, tokens TokenIssuer, saltRound int) *Service {
	return &Service{db: db, tokens: tokens, saltRound: saltRound}
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	Role           string
	RoomNumber     string
	BlockNumber    string
	Phone          string
	WorkArea       string
	RegisterNumber string
}

// ProfileInput carries a partial profile update. Nil fields are left untouched.
type ProfileInput struct {
	Username       *string
	Email          *string
	Phone          *string
	RoomNumber     *string
	BlockNumber    *string
	WorkArea       *string
	RegisterNumber *string
}

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a user account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if in.Role == "" {
		in.Role = models.RoleStudent
	}
	if !models.IsValidRole(in.Role) {
		return nil, utils.ErrInvalidRole
	}

	user := models.User{
		Username:   strings.TrimSpace(in.Username),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Role:       in.Role,
		RoomNumber: in.RoomNumber,
		Phone:      in.Phone,
	}
	switch in.Role {
	case models.RoleStudent:
		regNo := strings.ToUpper(strings.TrimSpace(in.RegisterNumber))
		if !ValidRegisterNumber(regNo) {
			return nil, utils.ErrBadRegisterNumber
		}
		user.RegisterNumber = &regNo
		user.BlockNumber = in.BlockNumber
	case models.RoleTechnician:
		user.WorkArea = in.WorkArea
	}

	db := s.db.WithContext(ctx)

	if taken, err := s.exists(db, "email = ?", user.Email); err != nil {
		return nil, utils.Internal("check email", err)
	} else if taken {
		return nil, utils.ErrEmailTaken
	}
	if taken, err := s.exists(db, "username = ?", user.Username); err != nil {
		return nil, utils.Internal("check username", err)
	} else if taken {
		return nil, utils.ErrUsernameTaken
	}
	if user.RegisterNumber != nil {
		if taken, err := s.exists(db, "register_number = ?", *user.RegisterNumber); err != nil {
			return nil, utils.Internal("check register number", err)
		} else if taken {
			return nil, utils.ErrRegisterNoTaken
		}
	}

	hash, err := utils.HashPassword(in.Password, s.saltRound)
	if err != nil {
		return nil, utils.Internal("hash password", err)
	}
	user.PasswordHash = hash

	if err := db.Create(&user).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.ErrAlreadyExists
		}
		return nil, utils.Internal("create user", err)
	}

	return s.withToken(&user)
}

// Authenticate checks email and password. Unknown email and wrong password
// produce the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrInvalidCredentials
		}
		return nil, utils.Internal("find user", err)
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, utils.ErrInvalidCredentials
	}

	return s.withToken(&user)
}

// GetProfile returns the user identified by userID.
func (s *Service) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUserNotFound
		}
		return nil, utils.Internal("find user", err)
	}
	return &user, nil
}

// UpdateProfile applies the supplied fields of in to the user's row.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	updates := map[string]interface{}{}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if taken, err := s.exists(db, "username = ? AND id <> ?", username, userID); err != nil {
			return nil, utils.Internal("check username", err)
		} else if taken {
			return nil, utils.ErrUsernameTaken
		}
		updates["username"] = username
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if taken, err := s.exists(db, "email = ? AND id <> ?", email, userID); err != nil {
			return nil, utils.Internal("check email", err)
		} else if taken {
			return nil, utils.ErrEmailTaken
		}
		updates["email"] = email
	}
	if in.RegisterNumber != nil {
		regNo := strings.ToUpper(strings.TrimSpace(*in.RegisterNumber))
		switch {
		case regNo == "" && user.Role != models.RoleStudent:
			updates["register_number"] = nil
		case !ValidRegisterNumber(regNo):
			return nil, utils.ErrBadRegisterNumber
		default:
			if taken, err := s.exists(db, "register_number = ? AND id <> ?", regNo, userID); err != nil {
				return nil, utils.Internal("check register number", err)
			} else if taken {
				return nil, utils.ErrRegisterNoTaken
			}
			updates["register_number"] = regNo
		}
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.RoomNumber != nil {
		updates["room_number"] = *in.RoomNumber
	}
	if in.BlockNumber != nil {
		updates["block_number"] = *in.BlockNumber
	}
	if in.WorkArea != nil {
		updates["work_area"] = *in.WorkArea
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := db.Model(user).Updates(updates).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.ErrAlreadyExists
		}
		return nil, utils.Internal("update profile", err)
	}

	return s.GetProfile(ctx, userID)
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if len(next) < MinPasswordLength {
		return utils.ErrPasswordTooShort
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(current, user.PasswordHash) {
		return utils.ErrWrongPassword
	}

	hash, err := utils.HashPassword(next, s.saltRound)
	if err != nil {
		return utils.Internal("hash password", err)
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return utils.Internal("update password", err)
	}
	return nil
}

// ListTechnicians returns every technician, by username.
func (s *Service) ListTechnicians(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleTechnician).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, utils.Internal("list technicians", err)
	}
	return users, nil
}

// ListUsers returns every user, optionally restricted to one role.
func (s *Service) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	users := []models.User{}
	if err := q.Find(&users).Error; err != nil {
		return nil, utils.Internal("list users", err)
	}
	return users, nil
}

func (s *Service) withToken(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, utils.Internal("issue token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) exists(db *gorm.DB, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
