package models

const (
	SettingSiteName      = "siteName"
	SettingBankName      = "bankName"
	SettingBankIban      = "bankIban"
	SettingBankBic       = "bankBic"
	SettingBankRecipient = "bankRecipient"
	SettingContactEmail  = "contactEmail"
	SettingContactPhone  = "contactPhone"
)

// DefaultSettings holds the value reported for every allowed key that has
// never been written.
var DefaultSettings = map[string]string{
	SettingSiteName:      "EventTickets",
	SettingBankName:      "Сбербанк России",
	SettingBankIban:      "RU1234567890123456789012",
	SettingBankBic:       "SBERRU2P",
	SettingBankRecipient: "ООО «EventTickets»",
	SettingContactEmail:  "info@eventtickets.com",
	SettingContactPhone:  "+7 (999) 123-45-67",
}

func IsAllowedSetting(key string) bool {
	_, ok := DefaultSettings[key]
	return ok
}

type PublicSettings struct {
	SiteName     string `json:"siteName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

type BankDetails struct {
	BankName  string `json:"bankName"`
	IBAN      string `json:"iban"`
	BIC       string `json:"bic"`
	Recipient string `json:"recipient"`
}
