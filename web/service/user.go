package service

import (
	"github.com/xlzd/gotp"

	"quipvid/database"
	"quipvid/database/model"
	"quipvid/database/repository"
	"quipvid/logger"
	"quipvid/util/common"
	"quipvid/util/crypto"
)

type UserService struct {
	userRepo       repository.UserRepository
	settingService *SettingService
}

func NewUserService(userRepo repository.UserRepository, settingService *SettingService) *UserService {
	return &UserService{
		userRepo:       userRepo,
		settingService: settingService,
	}
}

func (s *UserService) getRepo() repository.UserRepository {
	if s.userRepo == nil {
		s.userRepo = repository.NewUserRepository(database.GetDB())
	}
	return s.userRepo
}

func (s *UserService) getSettingService() *SettingService {
	if s.settingService == nil {
		s.settingService = &SettingService{}
	}
	return s.settingService
}

func (s *UserService) GetFirstUser() (*model.User, error) {
	user, err := s.getRepo().FindFirst()
	if database.IsNotFound(err) {
		return nil, common.ErrUserNotFound
	}
	return user, err
}

// CheckUser verifies the credentials and, when two-factor auth is
// enabled, the TOTP code. Returns nil on any mismatch.
func (s *UserService) CheckUser(username string, password string, twoFactorCode string) *model.User {
	user, err := s.getRepo().FindByUsername(username)
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	twoFactorEnable, err := s.getSettingService().GetTwoFactorEnable()
	if err != nil {
		logger.Warning("check two-factor setting err:", err)
		return nil
	}
	if twoFactorEnable {
		token, err := s.getSettingService().GetTwoFactorToken()
		if err != nil {
			logger.Warning("get two-factor token err:", err)
			return nil
		}
		if gotp.NewDefaultTOTP(token).Now() != twoFactorCode {
			return nil
		}
	}

	return user
}

func (s *UserService) UpdateUser(id int, username string, password string) error {
	user, err := s.getRepo().FindFirst()
	if err != nil {
		return err
	}
	if user.Id != id {
		return common.ErrUserNotFound
	}
	hashed, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	user.Username = username
	user.Password = hashed
	return s.getRepo().Update(user)
}

func (s *UserService) UpdateFirstUser(username string, password string) error {
	if username == "" {
		return common.NewError("username can not be empty")
	} else if password == "" {
		return common.NewError("password can not be empty")
	}
	user, err := s.getRepo().FindFirst()
	if database.IsNotFound(err) {
		hashed, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return err
		}
		return s.getRepo().Create(&model.User{
			Username: username,
			Password: hashed,
		})
	} else if err != nil {
		return err
	}
	return s.UpdateUser(user.Id, username, password)
}
