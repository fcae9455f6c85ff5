package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Keoroanthony/go-crm/internal/models"
)

type emailSender interface {
	Send(ctx context.Context, recipientEmail, subject, bodyHTML, bodyText string) error
}

type smsSender interface {
	Send(ctx context.Context, toPhoneNumber, message string) error
}

// Notifier tells customers about their orders by email and, when a phone
// number is on file, by SMS. Channels left unconfigured are skipped.
type Notifier struct {
	email emailSender
	sms   smsSender
}

// New accepts nil senders.
func New(email *EmailSender, sms *SMSSender) *Notifier {
	n := &Notifier{}
	if email != nil {
		n.email = email
	}
	if sms != nil {
		n.sms = sms
	}
	return n
}

// Enabled reports whether at least one channel is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && (n.email != nil || n.sms != nil)
}

// OrderPlaced sends the order confirmation.
func (n *Notifier) OrderPlaced(ctx context.Context, customer models.Customer, order models.Order) error {
	if !n.Enabled() {
		return nil
	}
	total := order.TotalAmount.StringFixed(2)

	var errs []error
	if n.email != nil {
		subject := fmt.Sprintf("Order #%d Confirmation - Thank You for Your Purchase!", order.ID)
		bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for your order! Your order #%d has been successfully placed.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order ID: %d</li>
                <li>Total Amount: KES %s</li>
            </ul>
            <p>Best regards,</p>
            <p>Your CRM Team</p>
        </body>
        </html>`, customer.Name, order.ID, order.ID, total)
		bodyText := fmt.Sprintf(
			"Dear %s,\n\nThank you for your order! Your order #%d has been successfully placed.\n\n"+
				"Order Details:\nOrder ID: %d\nTotal Amount: KES %s\n\nBest regards,\nYour CRM Team",
			customer.Name, order.ID, order.ID, total)

		if err := n.email.Send(ctx, customer.Email, subject, bodyHTML, bodyText); err != nil {
			errs = append(errs, err)
		} else {
			log.Printf("Order confirmation email sent for order %d to %s", order.ID, customer.Email)
		}
	}

	if n.sms != nil && customer.Phone != "" {
		message := fmt.Sprintf("Your order #%d has been successfully placed! Total: KES %s. Thank you for shopping with us!", order.ID, total)
		if err := n.sms.Send(ctx, customer.Phone, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OrderReminder emails a customer about a pending order. It is a no-op
// without an email channel.
func (n *Notifier) OrderReminder(ctx context.Context, email, orderID string) error {
	if n == nil || n.email == nil {
		return nil
	}

	subject := fmt.Sprintf("Reminder: your order #%s", orderID)
	bodyText := fmt.Sprintf("Hello,\n\nThis is a reminder about your order #%s placed in the last week.\n\nBest regards,\nYour CRM Team", orderID)
	bodyHTML := fmt.Sprintf("<html><body><p>Hello,</p><p>This is a reminder about your order #%s placed in the last week.</p><p>Best regards,</p><p>Your CRM Team</p></body></html>", orderID)
	return n.email.Send(ctx, email, subject, bodyHTML, bodyText)
}
