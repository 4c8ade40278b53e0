package services

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/eventtickets/internal/models"
)

type SettingsService struct {
	settings models.SettingsRepository
	tx       models.Transactor
	logger   *slog.Logger
}

func NewSettingsService(settings models.SettingsRepository, tx models.Transactor, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		tx:       tx,
		logger:   logger,
	}
}

// Admin returns every allowed key, falling back to the defaults.
func (ss *SettingsService) Admin(ctx context.Context) (map[string]string, error) {
	stored, err := ss.settings.AllSettings(ctx)
	if err != nil {
		return nil, internal(ctx, ss.logger, "load settings", err)
	}
	out := make(map[string]string, len(models.DefaultSettings))
	for k, def := range models.DefaultSettings {
		if v, ok := stored[k]; ok {
			out[k] = v
		} else {
			out[k] = def
		}
	}
	return out, nil
}

func (ss *SettingsService) Public(ctx context.Context) (*models.PublicSettings, error) {
	all, err := ss.Admin(ctx)
	if err != nil {
		return nil, err
	}
	return &models.PublicSettings{
		SiteName:     all[models.SettingSiteName],
		ContactEmail: all[models.SettingContactEmail],
		ContactPhone: all[models.SettingContactPhone],
	}, nil
}

func (ss *SettingsService) Bank(ctx context.Context) (*models.BankDetails, error) {
	all, err := ss.Admin(ctx)
	if err != nil {
		return nil, err
	}
	return bankDetails(all), nil
}

func bankDetails(all map[string]string) *models.BankDetails {
	return &models.BankDetails{
		BankName:  all[models.SettingBankName],
		IBAN:      all[models.SettingBankIban],
		BIC:       all[models.SettingBankBic],
		Recipient: all[models.SettingBankRecipient],
	}
}

// Update writes the allowed keys of values in one transaction. Unknown keys
// are ignored.
func (ss *SettingsService) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	allowed := make(map[string]string, len(values))
	var ignored []string
	for k, v := range values {
		if models.IsAllowedSetting(k) {
			allowed[k] = v
		} else {
			ignored = append(ignored, k)
		}
	}
	if len(ignored) > 0 {
		ss.logger.WarnContext(ctx, "ignoring unknown settings keys", "keys", ignored)
	}

	if len(allowed) > 0 {
		err := ss.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return ss.settings.UpsertSettings(ctx, allowed)
		})
		if err != nil {
			return nil, internal(ctx, ss.logger, "update settings", err)
		}
		ss.logger.InfoContext(ctx, "settings updated", "keys", len(allowed))
	}
	return ss.Admin(ctx)
}

// SeedDefaults stores the default value of every key that was never written.
func (ss *SettingsService) SeedDefaults(ctx context.Context) error {
	if err := ss.settings.InsertMissingSettings(ctx, models.DefaultSettings); err != nil {
		return internal(ctx, ss.logger, "seed settings", err)
	}
	return nil
}
