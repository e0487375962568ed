package claim

import (
	"Lost-Found-Registry/entities"
	"Lost-Found-Registry/pkg/token"
	"bytes"
	"html/template"
)

const claimMailSubject = "Item Claim QR Code"

var claimMailTemplate = template.Must(template.New("claim").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #333;">Item Claim QR Code</h2>
    <p>Hello,</p>
    <p>You have requested to claim the following item:</p>
    <ul>
        <li><strong>Item ID:</strong> {{.ID}}</li>
        <li><strong>Item Name:</strong> {{.Title}}</li>
        <li><strong>Category:</strong> {{.Category}}</li>
        <li><strong>Description:</strong> {{.Description}}</li>
        <li><strong>Location:</strong> {{.Location}}</li>
        <li><strong>Date:</strong> {{.Date}}</li>
    </ul>
    <p>Please present this QR code to the admin to claim your item:</p>
    <div style="text-align: center; margin: 20px 0; padding: 20px; background-color: #f8f9fa; border-radius: 8px;">
        <img src="cid:{{.ContentID}}" alt="Item Claim QR Code" style="max-width: 300px; border: 1px solid #ddd; padding: 10px; background-color: white;">
    </div>
    <p style="color: #666; font-size: 14px;">Note: This QR code contains your item details and will be used to verify your claim. The attached text file holds the same details.</p>
    <p>If you did not request this QR code, please ignore this email.</p>
    <hr>
    <p style="color: #666; font-size: 12px;">This is an automated message, please do not reply.</p>
</div>
`))

type claimMailData struct {
	ID          string
	Title       string
	Category    string
	Description string
	Location    string
	Date        string
	ContentID   string
}

func renderClaimMail(item *entities.Item, contentID string) (string, error) {
	data := claimMailData{
		ID:          item.ID,
		Title:       orNotAvailable(item.Title),
		Category:    orNotAvailable(item.Category),
		Description: orNotAvailable(item.Description),
		Location:    orNotAvailable(item.Location),
		Date:        token.NotAvailable,
		ContentID:   contentID,
	}
	if !item.Date.IsZero() {
		data.Date = item.Date.UTC().Format(token.DateLayout)
	}

	var buf bytes.Buffer
	if err := claimMailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orNotAvailable(s string) string {
	if s == "" {
		return token.NotAvailable
	}
	return s
}
