package services

import (
	"database/sql"
	"encoding/json"
	"errors"

	"aquaroom/internal/domain"
	"aquaroom/internal/pricing"
	"aquaroom/internal/repos"
)

// Setting keys; each maps to one JSON blob in the settings table.
const (
	SettingLogo     = "logo"
	SettingHomepage = "homepage"
	SettingAbout    = "about"
)

type SettingsService struct {
	Settings *repos.SettingsRepo
	Payments *repos.PaymentRepo
}

func NewSettingsService(settings *repos.SettingsRepo, payments *repos.PaymentRepo) *SettingsService {
	return &SettingsService{Settings: settings, Payments: payments}
}

// Get returns the raw JSON for a setting key, or an empty object when the
// key was never written (read paths degrade, they do not fail).
func (s *SettingsService) Get(key string) (json.RawMessage, error) {
	v, err := s.Settings.Get(key)
	if errors.Is(err, sql.ErrNoRows) {
		return json.RawMessage(`{}`), nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(v), nil
}

func (s *SettingsService) Set(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return &pricing.ValidationError{Field: key, Msg: "must be valid JSON"}
	}
	return s.Settings.Set(key, string(value))
}

func (s *SettingsService) PaymentMethods() ([]domain.PaymentMethod, error) {
	return s.Payments.List()
}

func (s *SettingsService) SavePaymentMethods(methods []domain.PaymentMethod) error {
	for _, m := range methods {
		if m.ID == "" {
			return &pricing.ValidationError{Field: "id", Msg: "must be set"}
		}
		switch m.Kind {
		case "bank_transfer", "promptpay", "cod":
		default:
			return &pricing.ValidationError{Field: "kind", Msg: "must be bank_transfer, promptpay or cod"}
		}
		if m.Name == "" {
			return &pricing.ValidationError{Field: "name", Msg: "must not be empty"}
		}
	}
	for _, m := range methods {
		if err := s.Payments.Upsert(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *SettingsService) SetPaymentIcon(id, url string) error {
	err := s.Payments.SetIcon(id, url)
	if errors.Is(err, repos.ErrNotFound) {
		return errors.New("payment method not found")
	}
	return err
}
