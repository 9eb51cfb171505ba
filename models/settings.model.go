package models

import "time"

// SettingsID is the key of the singleton settings document.
const SettingsID = "store_settings"

// StoreSettings holds the store's contact details
type StoreSettings struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}

// Settings is the singleton store configuration record
type Settings struct {
	StoreSettings   StoreSettings `bson:"storeSettings" json:"storeSettings"`
	ShippingPolicy  string        `bson:"shippingPolicy" json:"shippingPolicy"`
	ReturnsPolicy   string        `bson:"returnsPolicy" json:"returnsPolicy"`
	FAQContent      string        `bson:"faqContent" json:"faqContent"`
	TermsConditions string        `bson:"termsConditions" json:"termsConditions"`
	PrivacyPolicy   string        `bson:"privacyPolicy" json:"privacyPolicy"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// StoreSettingsUpdate carries the store fields to overwrite; nil means keep.
type StoreSettingsUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// SettingsUpdate is a partial settings change
type SettingsUpdate struct {
	StoreSettings   *StoreSettingsUpdate `json:"storeSettings"`
	ShippingPolicy  *string              `json:"shippingPolicy"`
	ReturnsPolicy   *string              `json:"returnsPolicy"`
	FAQContent      *string              `json:"faqContent"`
	TermsConditions *string              `json:"termsConditions"`
	PrivacyPolicy   *string              `json:"privacyPolicy"`
}

// Apply merges u into s.
func (u SettingsUpdate) Apply(s *Settings) {
	if u.StoreSettings != nil {
		setIf(&s.StoreSettings.Name, u.StoreSettings.Name)
		setIf(&s.StoreSettings.Email, u.StoreSettings.Email)
		setIf(&s.StoreSettings.Phone, u.StoreSettings.Phone)
		setIf(&s.StoreSettings.Address, u.StoreSettings.Address)
	}
	setIf(&s.ShippingPolicy, u.ShippingPolicy)
	setIf(&s.ReturnsPolicy, u.ReturnsPolicy)
	setIf(&s.FAQContent, u.FAQContent)
	setIf(&s.TermsConditions, u.TermsConditions)
	setIf(&s.PrivacyPolicy, u.PrivacyPolicy)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
