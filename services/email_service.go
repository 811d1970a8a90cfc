package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"

	"github.com/parkpal/parkpal-backend/config"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/types"
)

const bookingConfirmationTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your parking space is booked</h2>
  <p>Hi {{.Name}},</p>
  <p>Your booking is confirmed. Here are the details:</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0;"><strong>Space</strong></td><td>{{.SpaceTitle}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;"><strong>Address</strong></td><td>{{.Address}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;"><strong>From</strong></td><td>{{.StartDate}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;"><strong>Until</strong></td><td>{{.EndDate}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;"><strong>Total</strong></td><td>&pound;{{.TotalPrice}}</td></tr>
  </table>
  <p>Booking reference: {{.BookingID}}</p>
  <p>Safe travels,<br>The Parkpal team</p>
</div>`

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService sends booking confirmation emails through Resend.
type EmailService struct {
	config  *config.EmailConfig
	client  *resend.Client
	metrics *EmailMetrics
}

var _ EmailSender = (*EmailService)(nil)

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service", "from", cfg.FromAddress)
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "parkpal_email_send_duration_seconds",
			Help:    "Time taken to send emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parkpal_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parkpal_emails_sent_total",
			Help: "Total number of emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &EmailService{
		config:  cfg,
		client:  resend.NewClient(cfg.ResendAPIKey),
		metrics: metrics,
	}
}

func (s *EmailService) SendBookingConfirmation(ctx context.Context, user *types.User, booking *types.Booking, space *types.ParkingSpace) error {
	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	tmpl, err := template.New("booking_confirmation").Parse(bookingConfirmationTemplate)
	if err != nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var htmlContent bytes.Buffer
	err = tmpl.Execute(&htmlContent, map[string]string{
		"Name":       user.FullName(),
		"SpaceTitle": space.Title,
		"Address":    space.Address,
		"StartDate":  booking.StartDate,
		"EndDate":    booking.EndDate,
		"TotalPrice": booking.TotalPrice.StringFixed(2),
		"BookingID":  booking.ID,
	})
	if err != nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("failed to execute template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{user.Email},
		Subject: "Parkpal booking confirmed: " + space.Title,
		Html:    htmlContent.String(),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send confirmation email",
			"bookingID", booking.ID,
			"to", logger.MaskSensitiveString(user.Email, 2, 4),
			"error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Sent booking confirmation email", "bookingID", booking.ID, "emailID", sent.Id)
	return nil
}
