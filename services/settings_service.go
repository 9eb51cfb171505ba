package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/apperrors"
	"storefront/logger"
	"storefront/models"
	"storefront/pricing"
	"storefront/repository"
)

// SettingsService reads and updates the store settings singleton
type SettingsService struct {
	repo  repository.SettingsRepository
	store models.StoreSettings
}

// NewSettingsService creates a SettingsService. store seeds the contact
// details written on first read.
func NewSettingsService(repo repository.SettingsRepository, store models.StoreSettings) *SettingsService {
	return &SettingsService{repo: repo, store: store}
}

// Get returns the settings, saving defaults the first time.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Backend("Database error", err)
	}

	settings = DefaultSettings(s.store, time.Now().UTC())
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, apperrors.Backend("Database error", err)
	}
	logger.Info(ctx, "Default settings created")
	return settings, nil
}

// Update merges update into the stored settings. Fields left out of the
// update keep their value; a store with no settings yet starts blank.
func (s *SettingsService) Update(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		settings = &models.Settings{}
	case err != nil:
		return nil, apperrors.Backend("Database error", err)
	}

	update.Apply(settings)
	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, apperrors.Backend("Database error", err)
	}
	logger.Info(ctx, "Settings updated")
	return settings, nil
}

// DefaultSettings builds the first-run settings for store.
func DefaultSettings(store models.StoreSettings, now time.Time) *models.Settings {
	return &models.Settings{
		StoreSettings: store,
		ShippingPolicy: fmt.Sprintf(`We offer shipping across Pakistan.

Delivery Time: 3-5 business days
Shipping Charges:
%s

Minimum order amount: Rs %s
Tracking: Available for all orders

For questions, contact us at %s`, pricing.DefaultTiers.Describe(), pricing.MinimumOrder.String(), store.Email),
		ReturnsPolicy: fmt.Sprintf(`Return & Exchange Policy

We accept returns within 7 days of delivery.

Conditions:
- Product must be unused and in original packaging
- Return shipping costs are borne by the customer
- Refund will be processed within 5-7 business days

To initiate a return, contact us at %s`, store.Email),
		FAQContent: fmt.Sprintf(`Frequently Asked Questions

Q: How do I track my order?
A: You will receive a tracking link via email after your order is confirmed.

Q: What payment methods do you accept?
A: We accept Cash on Delivery (COD) for all orders.

Q: Do you ship internationally?
A: Currently, we only ship within Pakistan.

Q: What is the minimum order amount?
A: Minimum order amount is Rs %s.`, pricing.MinimumOrder.String()),
		TermsConditions: fmt.Sprintf(`Terms & Conditions

By using %s website and services, you agree to these terms.

1. Product Information: We strive for accuracy in all product descriptions.
2. Pricing: All prices are in Pakistani Rupees (PKR) and may change without notice.
3. Orders: All orders are subject to availability and confirmation.
4. Payment: Cash on Delivery only.
5. Delivery: 3-5 business days across Pakistan.

For questions, contact us at %s`, store.Name, store.Email),
		PrivacyPolicy: fmt.Sprintf(`Privacy Policy

%s respects your privacy and protects your personal information.

Information We Collect:
- Name, email, phone number, and shipping address
- Order history and preferences

How We Use Your Information:
- To process and fulfill your orders
- To send order updates and tracking information

Your Rights:
You can request to view, update, or delete your personal data by contacting us.

Contact: %s`, store.Name, store.Email),
		UpdatedAt: now,
	}
}
