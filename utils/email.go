package utils

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"storefront/logger"
	"storefront/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(to, subject, htmlContent string) error
}

// PostmarkMailer sends through Postmark.
type PostmarkMailer struct {
	client *postmark.Client
	sender string
}

// NewPostmarkMailer returns a Mailer using the Postmark server token.
func NewPostmarkMailer(apiToken, sender string) *PostmarkMailer {
	return &PostmarkMailer{client: postmark.NewClient(apiToken, ""), sender: sender}
}

func (m *PostmarkMailer) Send(to, subject, htmlContent string) error {
	_, err := m.client.SendEmail(postmark.Email{
		From:     m.sender,
		To:       to,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: stripTags(htmlContent),
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendGridMailer sends through SendGrid.
type SendGridMailer struct {
	client *sendgrid.Client
	sender string
}

// NewSendGridMailer returns a Mailer using the SendGrid API key.
func NewSendGridMailer(apiKey, sender string) *SendGridMailer {
	return &SendGridMailer{client: sendgrid.NewSendClient(apiKey), sender: sender}
}

func (m *SendGridMailer) Send(to, subject, htmlContent string) error {
	message := mail.NewSingleEmail(mail.NewEmail("", m.sender), subject, mail.NewEmail("", to), stripTags(htmlContent), htmlContent)
	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer only logs messages. Used when no provider is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string) error {
	logger.Log.Debug("Email not sent, no provider configured", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// EmailService renders and sends order notifications
type EmailService struct {
	mailer     Mailer
	storeName  string
	adminEmail string
	trackURL   string
}

// NewEmailService initializes and returns a new EmailService instance.
// trackURL is the public tracking page base, e.g. "https://shop.example/track".
func NewEmailService(mailer Mailer, storeName, adminEmail, trackURL string) *EmailService {
	return &EmailService{mailer: mailer, storeName: storeName, adminEmail: adminEmail, trackURL: trackURL}
}

// OrderPlaced notifies the customer and the store owner about a new order.
func (es *EmailService) OrderPlaced(ctx context.Context, order *models.Order) error {
	var errs []string

	if order.Customer != nil && order.Customer.Email != "" {
		subject := fmt.Sprintf("Order Confirmation - %s", order.OrderID)
		body := fmt.Sprintf(
			"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>%s<br>Subtotal: <strong>Rs %.2f</strong><br>Delivery: <strong>%s</strong><br>Total Amount: <strong>Rs %.2f</strong><br>Payment Method: <strong>Cash on Delivery</strong><br><br>Track your order: <a href=\"%s\">%s</a><br><br>Thank you for shopping with %s!",
			esc(order.CustomerName()), esc(order.OrderID), itemsTable(order.Items),
			order.Subtotal, deliveryLabel(order.DeliveryCharge), order.Total,
			esc(es.TrackingURL(order)), esc(order.TrackingToken), esc(es.storeName),
		)
		if err := es.mailer.Send(order.Customer.Email, subject, body); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if es.adminEmail != "" {
		subject := fmt.Sprintf("New order %s - Rs %.2f", order.OrderID, order.Total)
		body := fmt.Sprintf(
			"<strong>New order received</strong><br><br>Order: %s<br>Customer: %s<br>Phone: %s<br>Address: %s, %s, %s<br><br>%s<br>Total: <strong>Rs %.2f</strong>",
			esc(order.OrderID), esc(order.CustomerName()), esc(customerPhone(order)),
			esc(order.ShippingAddress.Address), esc(order.ShippingAddress.City), esc(order.ShippingAddress.State),
			itemsTable(order.Items), order.Total,
		)
		if err := es.mailer.Send(es.adminEmail, subject, body); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("order %s: %s", order.OrderID, strings.Join(errs, "; "))
	}
	logger.Debug(ctx, "Order emails sent", zap.String("order_id", order.OrderID))
	return nil
}

// StatusUpdated tells the customer their order moved to a new status.
func (es *EmailService) StatusUpdated(ctx context.Context, order *models.Order) error {
	if order.Customer == nil || order.Customer.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Your order %s is %s", order.OrderID, order.Status)
	body := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order (ID: %s) is now <strong>%s</strong>.<br><br>Track your order: <a href=\"%s\">%s</a>",
		esc(order.CustomerName()), esc(order.OrderID), esc(order.Status), esc(es.TrackingURL(order)), esc(order.TrackingToken),
	)
	if err := es.mailer.Send(order.Customer.Email, subject, body); err != nil {
		return err
	}
	logger.Debug(ctx, "Status email sent", zap.String("order_id", order.OrderID), zap.String("status", order.Status))
	return nil
}

// TrackingURL links to the public tracking page of order.
func (es *EmailService) TrackingURL(order *models.Order) string {
	return TrackingURL(es.trackURL, order)
}

// TrackingURL joins the tracking page base with the order's id and token.
func TrackingURL(base string, order *models.Order) string {
	return fmt.Sprintf("%s?orderId=%s&token=%s", base, url.QueryEscape(order.OrderID), url.QueryEscape(order.TrackingToken))
}

func itemsTable(items []models.OrderItem) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, item := range items {
		name := esc(item.Name)
		if item.Size != "" {
			name += " (" + esc(item.Size) + ")"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>x%d</td><td>Rs %.2f</td></tr>", name, item.Quantity, item.Price*float64(item.Quantity))
	}
	b.WriteString("</table>")
	return b.String()
}

func deliveryLabel(charge float64) string {
	if charge == 0 {
		return "FREE"
	}
	return fmt.Sprintf("Rs %.2f", charge)
}

func customerPhone(order *models.Order) string {
	if order.Customer == nil {
		return ""
	}
	return order.Customer.Phone
}

// esc escapes customer supplied text for the HTML bodies.
func esc(s string) string {
	return html.EscapeString(s)
}

func stripTags(body string) string {
	var b strings.Builder
	inTag := false
	for _, r := range strings.ReplaceAll(body, "<br>", "\n") {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}
