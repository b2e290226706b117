package service

import (
	"encoding/base32"
	"strconv"
	"strings"
	"time"

	"quipvid/config"
	"quipvid/database"
	"quipvid/database/model"
	"quipvid/database/repository"
	"quipvid/logger"
	"quipvid/util/common"
	"quipvid/util/random"
	"quipvid/web/entity"
)

// Runtime-tunable settings live in the settings table; process topology
// (ports, database target) stays in the static config.
var defaultValueMap = map[string]string{
	"secret":          "",
	"webBasePath":     "/",
	"sessionMaxAge":   "60",
	"pageSize":        "20",
	"timeLocation":    "UTC",
	"twoFactorEnable": "false",
	"twoFactorToken":  "",
	"ingestApiUrl":    "",
}

type SettingService struct {
	settingRepo repository.SettingRepository
}

func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
	}
}

// getRepo supports zero-value construction from the CLI path.
func (s *SettingService) getRepo() repository.SettingRepository {
	if s.settingRepo == nil {
		s.settingRepo = repository.NewSettingRepository(database.GetDB())
	}
	return s.settingRepo
}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	return s.getRepo().FindByKey(key)
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		return s.getRepo().Create(&model.Setting{
			Key:   key,
			Value: value,
		})
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return s.getRepo().Update(setting)
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	if _, ok := defaultValueMap[key]; !ok {
		return common.NewErrorf("key <%v> not in defaultValueMap", key)
	}
	return s.saveSetting(key, value)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.setString(key, strconv.FormatBool(value))
}

// GetSecret returns the session signing secret, generating and persisting
// one on first use.
func (s *SettingService) GetSecret() ([]byte, error) {
	secret, err := s.getString("secret")
	if err != nil {
		return nil, err
	}
	if secret == "" {
		secret = random.Seq(32)
		if err := s.saveSetting("secret", secret); err != nil {
			logger.Warning("save secret failed:", err)
		}
	}
	return []byte(secret), nil
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if basePath == "" {
		basePath = "/"
	}
	if basePath[0] != '/' {
		basePath = "/" + basePath
	}
	if basePath[len(basePath)-1] != '/' {
		basePath += "/"
	}
	return basePath, nil
}

func (s *SettingService) SetBasePath(basePath string) error {
	return s.setString("webBasePath", basePath)
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

// GetPageSize returns the default page size of the public list endpoints.
func (s *SettingService) GetPageSize() (int, error) {
	size, err := s.getInt("pageSize")
	if err != nil {
		return 0, err
	}
	if size < 1 || size > 100 {
		return 20, nil
	}
	return size, nil
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(enable bool) error {
	return s.setBool("twoFactorEnable", enable)
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(token string) error {
	return s.setString("twoFactorToken", token)
}

// EnableTwoFactor generates and stores a fresh TOTP secret and returns
// it, base32-encoded for authenticator apps.
func (s *SettingService) EnableTwoFactor() (string, error) {
	secret := strings.TrimRight(base32.StdEncoding.EncodeToString(random.Bytes(20)), "=")
	if err := s.SetTwoFactorToken(secret); err != nil {
		return "", err
	}
	if err := s.SetTwoFactorEnable(true); err != nil {
		return "", err
	}
	return secret, nil
}

func (s *SettingService) DisableTwoFactor() error {
	if err := s.SetTwoFactorEnable(false); err != nil {
		return err
	}
	return s.SetTwoFactorToken("")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		logger.Errorf("Invalid time location %s, using %s", l, defaultLocation)
		return time.LoadLocation(defaultLocation)
	}
	return location, nil
}

// GetIngestAPIURL prefers the database override, falling back to the
// static config default.
func (s *SettingService) GetIngestAPIURL() (string, error) {
	u, err := s.getString("ingestApiUrl")
	if err != nil {
		return "", err
	}
	if u == "" {
		return config.GetIngestAPIURL(), nil
	}
	return u, nil
}

func (s *SettingService) ResetSettings() error {
	return s.getRepo().DeleteAll()
}

func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	basePath, err := s.GetBasePath()
	if err != nil {
		return nil, err
	}
	sessionMaxAge, err := s.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}
	pageSize, err := s.GetPageSize()
	if err != nil {
		return nil, err
	}
	timeLocation, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	ingestAPIURL, err := s.getString("ingestApiUrl")
	if err != nil {
		return nil, err
	}

	return &entity.AllSetting{
		WebBasePath:   basePath,
		SessionMaxAge: sessionMaxAge,
		PageSize:      pageSize,
		TimeLocation:  timeLocation,
		IngestAPIURL:  ingestAPIURL,
	}, nil
}

func (s *SettingService) UpdateAllSetting(allSetting *entity.AllSetting) error {
	if err := allSetting.CheckValid(); err != nil {
		return err
	}

	if err := s.setString("webBasePath", allSetting.WebBasePath); err != nil {
		return err
	}
	if err := s.setInt("sessionMaxAge", allSetting.SessionMaxAge); err != nil {
		return err
	}
	if err := s.setInt("pageSize", allSetting.PageSize); err != nil {
		return err
	}
	if err := s.setString("timeLocation", allSetting.TimeLocation); err != nil {
		return err
	}
	return s.setString("ingestApiUrl", allSetting.IngestAPIURL)
}
