package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.twilio.com"

// Booking carries the fields interpolated into the outbound templates.
type Booking struct {
	ClientName     string
	Service        string
	Date           string
	Time           string
	ClientWhatsApp string
}

// Receipt holds the provider message ids of the two outbound notifications.
type Receipt struct {
	ClientSID string `json:"clientSid,omitempty"`
	AdminSID  string `json:"adminSid,omitempty"`
}

// WhatsAppSender posts WhatsApp messages through Twilio's REST API: one
// form-encoded POST per message, basic auth, message sid parsed from the
// JSON response.
type WhatsAppSender struct {
	accountSID  string
	authToken   string
	from        string
	adminNumber string
	apiBase     string
	httpClient  *http.Client
}

func NewWhatsAppSender(accountSID, authToken, from, adminNumber string) *WhatsAppSender {
	return &WhatsAppSender{
		accountSID:  accountSID,
		authToken:   authToken,
		from:        from,
		adminNumber: adminNumber,
		apiBase:     defaultAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether credentials are configured at all.
func (s *WhatsAppSender) Enabled() bool {
	return s != nil && s.accountSID != "" && s.authToken != "" && s.from != ""
}

// NotifyBooking sends the client confirmation and the admin alert for a new
// booking and returns both provider ids.
func (s *WhatsAppSender) NotifyBooking(ctx context.Context, b Booking) (Receipt, error) {
	if !s.Enabled() {
		return Receipt{}, errors.New("notify: twilio credentials missing")
	}

	clientBody := fmt.Sprintf(
		"Hello %s! 🌿 Your session for %s is booked for %s at %s. We look forward to seeing you at Serenity Massage.",
		b.ClientName, b.Service, b.Date, b.Time,
	)
	clientSID, err := s.send(ctx, whatsappAddr(b.ClientWhatsApp), clientBody)
	if err != nil {
		return Receipt{}, fmt.Errorf("notify: client message: %w", err)
	}

	receipt := Receipt{ClientSID: clientSID}
	if s.adminNumber == "" {
		return receipt, nil
	}

	adminBody := fmt.Sprintf(
		"🛎️ NEW BOOKING: %s scheduled a %s session on %s at %s.",
		b.ClientName, b.Service, b.Date, b.Time,
	)
	adminSID, err := s.send(ctx, s.adminNumber, adminBody)
	if err != nil {
		return receipt, fmt.Errorf("notify: admin message: %w", err)
	}
	receipt.AdminSID = adminSID

	return receipt, nil
}

func (s *WhatsAppSender) send(ctx context.Context, to, body string) (string, error) {
	payload := url.Values{}
	payload.Set("From", s.from)
	payload.Set("To", to)
	payload.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.apiBase, s.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("twilio status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("twilio response: %w", err)
	}
	return parsed.SID, nil
}

// whatsappAddr prefixes a raw number with the transport scheme Twilio
// expects. Numbers already carrying it pass through.
func whatsappAddr(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
