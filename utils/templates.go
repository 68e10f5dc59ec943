package utils

import (
	"bytes"
	"fmt"
	"html/template"
)

const brandName = "Mera Bestie"

var complaintHTML = template.Must(template.New("complaint").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e1e1e1; border-radius: 10px;">
  <div style="background-color: #ffb6c1; padding: 15px; border-radius: 10px 10px 0 0; text-align: center;">
    <h1 style="color: #ffffff; font-size: 36px; margin: 0;">{{.Brand}}</h1>
  </div>
  <div style="padding: 20px;">
    <h2 style="color: #2c3e50; margin-top: 0;">Complaint Registration Confirmation</h2>
    <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
      <p><strong>Complaint ID:</strong> {{.Number}}</p>
      <p><strong>Issue Description:</strong></p>
      <p style="font-style: italic; color: #555;">{{.Message}}</p>
    </div>
    <p style="color: #7f8c8d; font-size: 16px;">Thank you for reaching out to us! Our specialists are working on resolving your issue, and you can expect a response within 24 hours.</p>
  </div>
  <p style="color: #95a5a6; font-size: 12px; text-align: center;">This is an automated email. Please do not reply to this message.</p>
</div>`))

var orderHTML = template.Must(template.New("order").Parse(`<h1>Order Confirmation</h1>
<p>Hello {{.Name}},</p>
<p>Your order with Order ID: {{.OrderID}} has been placed successfully!</p>
<p>Tracking ID: {{.TrackingID}}</p>
<p>Thank you for shopping with us.</p>`))

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Templates are static and data is plain strings.
		panic(err)
	}
	return buf.String()
}

func ComplaintConfirmation(to, number, message string) Message {
	return Message{
		To:      to,
		Subject: "Complaint Registration Confirmation",
		Text: fmt.Sprintf("%s\n\nComplaint Registration Confirmation\n\nComplaint ID: %s\n\nIssue Description:\n%s\n\n"+
			"Thank you for reaching out to us! Our specialists are working on resolving your issue, and you can expect a response within 24 hours.\n\n"+
			"This is an automated email. Please do not reply to this message.\n", brandName, number, message),
		HTML: render(complaintHTML, struct{ Brand, Number, Message string }{brandName, number, message}),
	}
}

func OrderConfirmation(to, name, orderID, trackingID string) Message {
	return Message{
		To:      to,
		Subject: "Order Confirmation",
		Text: fmt.Sprintf("Hello %s,\n\nYour order with Order ID: %s has been placed successfully!\nTracking ID: %s\n\nThank you for shopping with us.\n",
			name, orderID, trackingID),
		HTML: render(orderHTML, struct{ Name, OrderID, TrackingID string }{name, orderID, trackingID}),
	}
}

func CouponAvailable(to, code string, discount int) Message {
	return Message{
		To:      to,
		Subject: "New Coupon Available!",
		Text:    fmt.Sprintf("A new coupon %s is now available with %d%% discount. Use it in your next purchase!", code, discount),
	}
}

func CouponExpired(to, code string, discount int) Message {
	return Message{
		To:      to,
		Subject: "Coupon Expired",
		Text:    fmt.Sprintf("The coupon %s with %d%% discount has expired.", code, discount),
	}
}
