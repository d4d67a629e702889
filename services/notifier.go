package services

import (
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"sync"
	"time"

	"bookmyrepair-server/config"
	"bookmyrepair-server/models"
	"bookmyrepair-server/utils"
)

// ChannelResult reports the outcome of one notification channel.
type ChannelResult struct {
	Configured   bool     `json:"configured"`
	CustomerSent bool     `json:"customerSent"`
	AdminSent    bool     `json:"adminSent"`
	Errors       []string `json:"errors"`
}

// NotificationResult aggregates both channels for one dispatch attempt.
type NotificationResult struct {
	Email    ChannelResult `json:"email"`
	WhatsApp ChannelResult `json:"whatsapp"`
}

// Notifier decides nothing: it is handed a booking snapshot and delivers
// email and WhatsApp alerts, reporting per-channel results. Failures are
// collected, never returned as errors.
type Notifier interface {
	SendBookingCreated(b *models.Booking) NotificationResult
	SendStatusChanged(b *models.Booking, previousStatus string) NotificationResult
}

// Dispatcher is the production Notifier. It is constructed once at
// process start and injected into the handlers; there is no lazily
// initialized global transport state.
type Dispatcher struct {
	mail               config.MailConfig
	whatsApp           config.WhatsAppConfig
	defaultCountryCode string
	httpClient         *http.Client
}

// NewDispatcher builds a dispatcher from the loaded configuration. The
// HTTP client timeout bounds every WhatsApp call so notification work
// cannot hang a request goroutine indefinitely.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		mail:               cfg.Mail,
		whatsApp:           cfg.WhatsApp,
		defaultCountryCode: cfg.Phone.DefaultCountryCode,
		httpClient:         &http.Client{Timeout: 12 * time.Second},
	}
}

func isPlaceholderValue(value string) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return true
	}
	return strings.Contains(normalized, "replace_with") ||
		strings.Contains(normalized, "your_new_16_char") ||
		strings.Contains(normalized, "app_password_here") ||
		strings.Contains(normalized, "example")
}

func (d *Dispatcher) emailConfigured() bool {
	return d.mail.User != "" && !isPlaceholderValue(d.mail.AppPassword)
}

func (d *Dispatcher) whatsAppConfigured() bool {
	return d.whatsApp.AccountSID != "" && d.whatsApp.AuthToken != "" && d.whatsApp.From != ""
}

const emailNotConfiguredMsg = "Email not configured. Set GMAIL_USER and a valid GMAIL_APP_PASSWORD."
const whatsAppNotConfiguredMsg = "WhatsApp not configured. Set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_WHATSAPP_FROM."

// sendMail delivers one multipart text+html message over gmail SMTP with
// STARTTLS.
func (d *Dispatcher) sendMail(to, subject, text, htmlBody string) error {
	const boundary = "bmr-alt-boundary"

	var msg strings.Builder
	msg.WriteString("From: " + d.mail.User + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n")
	msg.WriteString("\r\n")
	msg.WriteString("--" + boundary + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(text)
	msg.WriteString("\r\n--" + boundary + "\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n--" + boundary + "--\r\n")

	addr := d.mail.SMTPHost + ":" + d.mail.SMTPPort
	auth := smtp.PlainAuth("", d.mail.User, d.mail.AppPassword, d.mail.SMTPHost)
	return smtp.SendMail(addr, auth, d.mail.User, []string{to}, []byte(msg.String()))
}

// sendWhatsAppMessage posts one message to the Twilio Messages API.
func (d *Dispatcher) sendWhatsAppMessage(toNumber, message string) error {
	from := d.whatsApp.From
	if !strings.HasPrefix(from, "whatsapp:") {
		from = "whatsapp:" + from
	}
	to := toNumber
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", d.whatsApp.AccountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(d.whatsApp.AccountSID, d.whatsApp.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}

func (d *Dispatcher) sendCreationEmails(b *models.Booking) ChannelResult {
	result := ChannelResult{Configured: d.emailConfigured(), Errors: []string{}}
	if !result.Configured {
		result.Errors = append(result.Errors, emailNotConfiguredMsg)
		return result
	}

	customerEmail := utils.CleanEmail(b.Email)
	adminEmail := utils.CleanEmail(d.mail.AdminEmail)
	if adminEmail == "" {
		adminEmail = utils.CleanEmail(d.mail.User)
	}

	text := BookingSummaryText(b)
	htmlBody := bookingSummaryHTML(b)

	if customerEmail != "" {
		subject := "Booking Confirmed: " + bookingDisplayID(b)
		if err := d.sendMail(customerEmail, subject, "Your booking is confirmed.\n\n"+text, htmlBody); err != nil {
			result.Errors = append(result.Errors, "Customer email failed: "+err.Error())
		} else {
			result.CustomerSent = true
		}
	}

	if adminEmail != "" {
		subject := "New Repair Booking: " + bookingDisplayID(b)
		if err := d.sendMail(adminEmail, subject, text, htmlBody); err != nil {
			result.Errors = append(result.Errors, "Admin email failed: "+err.Error())
		} else {
			result.AdminSent = true
		}
	}

	return result
}

func (d *Dispatcher) sendCreationWhatsApp(b *models.Booking) ChannelResult {
	result := ChannelResult{Configured: d.whatsAppConfigured(), Errors: []string{}}
	if !result.Configured {
		result.Errors = append(result.Errors, whatsAppNotConfiguredMsg)
		return result
	}

	customerPhone := utils.NormalizePhoneForWhatsApp(b.Phone, d.defaultCountryCode)
	adminPhone := utils.NormalizePhoneForWhatsApp(d.whatsApp.AdminTo, d.defaultCountryCode)
	message := "Booking Confirmed\n" + BookingSummaryText(b)

	if customerPhone != "" {
		if err := d.sendWhatsAppMessage(customerPhone, message); err != nil {
			result.Errors = append(result.Errors, "Customer WhatsApp failed: "+err.Error())
		} else {
			result.CustomerSent = true
		}
	}

	if adminPhone != "" {
		if err := d.sendWhatsAppMessage(adminPhone, "New Booking Received\n"+BookingSummaryText(b)); err != nil {
			result.Errors = append(result.Errors, "Admin WhatsApp failed: "+err.Error())
		} else {
			result.AdminSent = true
		}
	}

	return result
}

func (d *Dispatcher) sendStatusEmail(b *models.Booking, previousStatus string) ChannelResult {
	result := ChannelResult{Configured: d.emailConfigured(), Errors: []string{}}
	if !result.Configured {
		result.Errors = append(result.Errors, emailNotConfiguredMsg)
		return result
	}

	customerEmail := utils.CleanEmail(b.Email)
	if customerEmail == "" {
		return result
	}

	currentStatus := b.Status
	if currentStatus == "" {
		currentStatus = models.StatusPending
	}

	subject := StatusSubject(currentStatus, b)
	text := BuildStatusUpdateText(b, previousStatus)
	htmlBody := buildStatusUpdateHTML(b, previousStatus)

	if err := d.sendMail(customerEmail, subject, text, htmlBody); err != nil {
		result.Errors = append(result.Errors, "Status email failed: "+err.Error())
	} else {
		result.CustomerSent = true
	}

	return result
}

func (d *Dispatcher) sendStatusWhatsApp(b *models.Booking, previousStatus string) ChannelResult {
	result := ChannelResult{Configured: d.whatsAppConfigured(), Errors: []string{}}
	if !result.Configured {
		result.Errors = append(result.Errors, whatsAppNotConfiguredMsg)
		return result
	}

	customerPhone := utils.NormalizePhoneForWhatsApp(b.Phone, d.defaultCountryCode)
	if customerPhone == "" {
		return result
	}

	if err := d.sendWhatsAppMessage(customerPhone, BuildStatusUpdateText(b, previousStatus)); err != nil {
		result.Errors = append(result.Errors, "Status WhatsApp failed: "+err.Error())
	} else {
		result.CustomerSent = true
	}

	return result
}

// SendBookingCreated notifies customer and admin about a new booking.
// Both channels run concurrently; one failing never blocks the other.
func (d *Dispatcher) SendBookingCreated(b *models.Booking) NotificationResult {
	var result NotificationResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Email = d.sendCreationEmails(b)
	}()
	go func() {
		defer wg.Done()
		result.WhatsApp = d.sendCreationWhatsApp(b)
	}()
	wg.Wait()
	return result
}

// SendStatusChanged notifies the customer about a status transition.
func (d *Dispatcher) SendStatusChanged(b *models.Booking, previousStatus string) NotificationResult {
	var result NotificationResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Email = d.sendStatusEmail(b, previousStatus)
	}()
	go func() {
		defer wg.Done()
		result.WhatsApp = d.sendStatusWhatsApp(b, previousStatus)
	}()
	wg.Wait()
	return result
}
