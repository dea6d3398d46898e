package service

import (
	"context"
	"fmt"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// emailNotifier sends customer-facing rental emails through SendGrid.
// Delivery failures are logged and never surfaced to the caller.
type emailNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailNotifier(apiKey, fromEmail, fromName string) RentalNotifier {
	return &emailNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailNotifier) RentalCreated(ctx context.Context, rt *domain.Rental) {
	subject := fmt.Sprintf("Rental request received: %s", rt.ProductName)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your rental request for %s from %s to %s (%d days, total $%.2f).\n\nYou will be notified once it is confirmed.\n\nBest regards,\nThe Rentio Team",
		rt.UserName, rt.ProductName,
		rt.StartDate.Format("2006-01-02"), rt.EndDate.Format("2006-01-02"),
		rt.TotalDays, float64(rt.TotalPriceCents)/100)
	s.send(rt, subject, body)
}

func (s *emailNotifier) RentalStatusChanged(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) {
	var subject, body string
	switch rt.Status {
	case domain.RentalStatusConfirmed:
		subject = fmt.Sprintf("Rental confirmed: %s", rt.ProductName)
		body = fmt.Sprintf("Hello %s,\n\nYour rental of %s has been confirmed. Pickup is available from %s.", rt.UserName, rt.ProductName, rt.StartDate.Format("2006-01-02"))
	case domain.RentalStatusPickedUp:
		subject = fmt.Sprintf("Rental picked up: %s", rt.ProductName)
		body = fmt.Sprintf("Hello %s,\n\nYou picked up %s. Please return it by %s.", rt.UserName, rt.ProductName, rt.EndDate.Format("2006-01-02"))
	case domain.RentalStatusReturned:
		subject = fmt.Sprintf("Rental returned: %s", rt.ProductName)
		body = fmt.Sprintf("Hello %s,\n\nThanks for returning %s. We hope to see you again.", rt.UserName, rt.ProductName)
	case domain.RentalStatusCancelled:
		subject = fmt.Sprintf("Rental cancelled: %s", rt.ProductName)
		body = fmt.Sprintf("Hello %s,\n\nYour rental of %s has been cancelled.", rt.UserName, rt.ProductName)
	case domain.RentalStatusOverdue:
		subject = fmt.Sprintf("Rental overdue: %s", rt.ProductName)
		body = fmt.Sprintf("Hello %s,\n\nYour rental of %s was due back on %s. Please return it as soon as possible.", rt.UserName, rt.ProductName, rt.EndDate.Format("2006-01-02"))
	default:
		return
	}
	body += "\n\nBest regards,\nThe Rentio Team"
	s.send(rt, subject, body)
}

func (s *emailNotifier) send(rt *domain.Rental, subject, body string) {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(rt.UserName, rt.UserEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.Error("Failed to send rental email", "rental_id", rt.ID, "error", err)
		return
	}
	if response.StatusCode >= 400 {
		logger.Error("SendGrid rejected rental email", "rental_id", rt.ID, "status", response.StatusCode, "body", response.Body)
	}
}
