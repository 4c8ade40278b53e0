package services

import (
	"context"
	"testing"

	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_Defaults(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	pub, err := ts.settings.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EventTickets", pub.SiteName)
	assert.Equal(t, "info@eventtickets.com", pub.ContactEmail)

	bank, err := ts.settings.Bank(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SBERRU2P", bank.BIC)
	assert.Equal(t, "RU1234567890123456789012", bank.IBAN)

	all, err := ts.settings.Admin(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(models.DefaultSettings))
}

func TestSettingsService_UpdateIgnoresUnknownKeys(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	all, err := ts.settings.Update(ctx, map[string]string{
		models.SettingSiteName: "Afisha",
		models.SettingBankBic:  "TESTRU2P",
		"adminPassword":        "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Afisha", all[models.SettingSiteName])
	assert.NotContains(t, all, "adminPassword")

	stored, err := ts.store.AllSettings(ctx)
	require.NoError(t, err)
	assert.NotContains(t, stored, "adminPassword")

	bank, err := ts.settings.Bank(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TESTRU2P", bank.BIC)
}

func TestSettingsService_SeedDefaultsKeepsExistingValues(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	_, err := ts.settings.Update(ctx, map[string]string{models.SettingSiteName: "Afisha"})
	require.NoError(t, err)

	require.NoError(t, ts.settings.SeedDefaults(ctx))

	stored, err := ts.store.AllSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Afisha", stored[models.SettingSiteName])
	assert.Equal(t, models.DefaultSettings[models.SettingBankName], stored[models.SettingBankName])
}
