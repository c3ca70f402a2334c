package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/mailer"
)

// ── user errors ──

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already in use")
	ErrUserSelfDelete        = errors.New("cannot delete yourself")
	ErrUserSelfBlocco        = errors.New("cannot block yourself")
	ErrAssegnazioneDuplicata = errors.New("duplicate assignment")
	ErrPatenteMancante       = errors.New("worker lacks the licence required by the vehicle")
)

// UserService handles account management and assignments (admin surface).
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID string) error
	SetBlocco(ctx context.Context, id string, req *dto.BloccoRequest, callerID string) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, id, callerID string) (*dto.ResetPasswordResponse, error)
	AssegnaCantieri(ctx context.Context, id string, req *dto.AssegnaCantieriRequest) (*dto.UserResponse, error)
	AssegnaMezzi(ctx context.Context, id string, req *dto.AssegnaMezziRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	mail   *mailer.Mailer
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, mail *mailer.Mailer, logger *zap.Logger) UserService {
	return &userService{repo: repo, mail: mail, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("temp password generation failed", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Nome:               req.Nome,
		Email:              req.Email,
		Telefono:           req.Telefono,
		PasswordHash:       string(hash),
		Role:               req.Role,
		PatenteCamion:      req.PatenteCamion,
		PatenteEscavatore:  req.PatenteEscavatore,
		MustChangePassword: true,
		BaseModel:          model.BaseModel{CreatedBy: &callerID},
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, err
	}

	// The mail is best-effort: the password is also in the response so the
	// admin can hand it over when SMTP is down.
	if err := s.mail.SendCredentials(user.Email, user.Nome, tempPassword); err != nil {
		s.logger.Warn("credentials mail failed", zap.String("email", user.Email), zap.Error(err))
	}

	return &dto.CreateUserResponse{
		User:         toUserResponse(user),
		TempPassword: tempPassword,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{Role: req.Role, Keyword: req.Keyword}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("user list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Nome != nil {
		user.Nome = *req.Nome
	}
	if req.Email != nil {
		existing, err := s.repo.User.GetByEmail(ctx, *req.Email)
		if err == nil && existing.UserID != id {
			return nil, ErrEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Telefono != nil {
		user.Telefono = *req.Telefono
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.PatenteCamion != nil {
		user.PatenteCamion = *req.PatenteCamion
	}
	if req.PatenteEscavatore != nil {
		user.PatenteEscavatore = *req.PatenteEscavatore
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("user update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrUserSelfDelete
	}
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("user delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) SetBlocco(ctx context.Context, id string, req *dto.BloccoRequest, callerID string) (*dto.UserResponse, error) {
	if id == callerID {
		return nil, ErrUserSelfBlocco
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Bloccato = req.Bloccato
	if req.Bloccato && req.Motivo != "" {
		motivo := req.Motivo
		user.MotivoBlocco = &motivo
	} else if !req.Bloccato {
		user.MotivoBlocco = nil
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("blocco update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) ResetPassword(ctx context.Context, id, callerID string) (*dto.ResetPasswordResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("temp password generation failed", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("password reset failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.mail.SendCredentials(user.Email, user.Nome, tempPassword); err != nil {
		s.logger.Warn("credentials mail failed", zap.String("email", user.Email), zap.Error(err))
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

func (s *userService) AssegnaCantieri(ctx context.Context, id string, req *dto.AssegnaCantieriRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	seen := make(map[string]bool, len(req.CantiereIDs))
	for _, cantiereID := range req.CantiereIDs {
		if seen[cantiereID] {
			return nil, ErrAssegnazioneDuplicata
		}
		seen[cantiereID] = true
		if _, err := s.repo.Cantiere.GetByID(ctx, cantiereID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCantiereNotFound
			}
			return nil, err
		}
	}

	if err := s.repo.Assegnazione.ReplaceCantieri(ctx, id, req.CantiereIDs); err != nil {
		s.logger.Error("cantiere assignment failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *userService) AssegnaMezzi(ctx context.Context, id string, req *dto.AssegnaMezziRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	seen := make(map[string]bool, len(req.MezzoIDs))
	for _, mezzoID := range req.MezzoIDs {
		if seen[mezzoID] {
			return nil, ErrAssegnazioneDuplicata
		}
		seen[mezzoID] = true

		mezzo, err := s.repo.Mezzo.GetByID(ctx, mezzoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMezzoNotFound
			}
			return nil, err
		}
		if mezzo.RichiedePatenteCamion && !user.PatenteCamion {
			return nil, ErrPatenteMancante
		}
		if mezzo.RichiedePatenteEscavatore && !user.PatenteEscavatore {
			return nil, ErrPatenteMancante
		}
	}

	if err := s.repo.Assegnazione.ReplaceMezzi(ctx, id, req.MezzoIDs); err != nil {
		s.logger.Error("mezzo assignment failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ── helpers ──

// toUserResponse converts a model.User for the wire.
func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:                 user.UserID,
		Nome:               user.Nome,
		Email:              user.Email,
		Telefono:           user.Telefono,
		Role:               user.Role,
		PatenteCamion:      user.PatenteCamion,
		PatenteEscavatore:  user.PatenteEscavatore,
		Bloccato:           user.Bloccato,
		MustChangePassword: user.MustChangePassword,
	}
	if user.MotivoBlocco != nil {
		resp.MotivoBlocco = *user.MotivoBlocco
	}
	for i := range user.Cantieri {
		resp.Cantieri = append(resp.Cantieri, dto.RifResponse{
			ID:   user.Cantieri[i].CantiereID,
			Nome: user.Cantieri[i].Nome,
		})
	}
	for i := range user.Mezzi {
		resp.Mezzi = append(resp.Mezzi, dto.RifResponse{
			ID:   user.Mezzi[i].MezzoID,
			Nome: user.Mezzi[i].Nome,
		})
	}
	return resp
}

// generateTempPassword returns a random password with at least one letter
// and one digit.
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 8 {
		length = 8
	}

	result := make([]byte, length)

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
