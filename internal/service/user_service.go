package service

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/model"
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/minio"
	"ProjectShelf/internal/pkg/redis"
	"ProjectShelf/internal/pkg/security"
	"ProjectShelf/internal/repository"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) (*dto.AuthDTO, error)
	Login(ctx context.Context, dto *dto.CredentialDTO) (*dto.AuthDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	GetPublicProfile(ctx context.Context, username string) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, id uint64, dto *dto.UpdateProfileDTO) error
	UpdateAvatar(ctx context.Context, id uint64, objectName string) (string, error)
	UpgradeToCreator(ctx context.Context, id uint64) (*dto.AuthDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.AuthDTO, error) {
	findUser, err := s.userRepo.GetUserByEmailOrUsername(ctx, regDTO.Email, regDTO.Username)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		if findUser.Email == regDTO.Email {
			return nil, ErrUserEmailExist
		}
		return nil, ErrUserUsernameExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	avatarURL := minio.GetPublicURL(consts.DefaultAvatarURL)
	user := &model.User{
		Email:     regDTO.Email,
		Username:  regDTO.Username,
		Name:      regDTO.Name,
		Password:  passwordHash,
		Role:      consts.RoleVisitor,
		AvatarURL: &avatarURL,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		// 并发注册可能绕过前置查重,落库冲突同样按已存在处理
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrUserEmailExist
		}
		return nil, err
	}

	return s.issueToken(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.AuthDTO, error) {
	var user *model.User
	var err error
	switch {
	case credDTO.Email != nil:
		user, err = s.userRepo.GetUserByEmail(ctx, *credDTO.Email)
	case credDTO.Username != nil:
		user, err = s.userRepo.GetUserByUsername(ctx, *credDTO.Username)
	default:
		return nil, ErrMissingLoginCredentials
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}

	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return s.issueToken(user)
}

// Logout 将令牌签名写入黑名单,剩余有效期内拒绝
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return nil
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlockKey+signature, "1", ttl)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user, true), nil
}

// GetPublicProfile 对外主页资料,不含邮箱,带短缓存
func (s *UserServiceImpl) GetPublicProfile(ctx context.Context, username string) (*dto.UserDTO, error) {
	key := consts.UserProfileKey + username
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var res dto.UserDTO
		_ = json.Unmarshal([]byte(val), &res)
		return &res, nil
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	res := toUserDTO(user, false)
	if b, err := json.Marshal(res); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(b), 5*time.Minute)
	}
	return res, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, updDTO *dto.UpdateProfileDTO) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	patch := &model.User{ID: id}
	if err = copier.Copy(patch, updDTO); err != nil {
		return err
	}
	if err = s.userRepo.UpdateUser(ctx, patch); err != nil {
		return err
	}

	_ = redis.DeleteKey(ctx, consts.UserProfileKey+user.Username)
	return nil
}

func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, id uint64, objectName string) (string, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	url := minio.GetPublicURL(objectName)
	patch := &model.User{ID: id, AvatarURL: &url}
	if err = s.userRepo.UpdateUser(ctx, patch); err != nil {
		return "", err
	}

	_ = redis.DeleteKey(ctx, consts.UserProfileKey+user.Username)
	return url, nil
}

// UpgradeToCreator 访客升级为创作者后才能发布项目,重签令牌让新角色立即生效
func (s *UserServiceImpl) UpgradeToCreator(ctx context.Context, id uint64) (*dto.AuthDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Role == consts.RoleCreator {
		return nil, ErrUserAlreadyCreator
	}

	if err = s.userRepo.UpdateUserRole(ctx, id, consts.RoleCreator); err != nil {
		return nil, err
	}

	user.Role = consts.RoleCreator
	_ = redis.DeleteKey(ctx, consts.UserProfileKey+user.Username)
	return s.issueToken(user)
}

func (s *UserServiceImpl) issueToken(user *model.User) (*dto.AuthDTO, error) {
	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthDTO{
		Token: token,
		User:  toUserDTO(user, true),
	}, nil
}

func toUserDTO(user *model.User, withEmail bool) *dto.UserDTO {
	res := &dto.UserDTO{
		UserID:    user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
		CreatedAt: &user.CreatedAt,
	}
	if withEmail {
		res.Email = user.Email
	}
	return res
}
