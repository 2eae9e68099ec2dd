package controller

import (
	"html"
	"strings"

	"servicemap/internal/models"
	"servicemap/pkg/phone"
)

const userPopup = "Your Location"

// servicePopup renders the popup body for a record. All values are escaped.
func servicePopup(rec models.ServiceRecord, dialer *phone.Dialer) string {
	var b strings.Builder
	b.WriteString(`<div class="popup-content">`)
	b.WriteString("<h3>" + html.EscapeString(rec.Name) + "</h3>")
	b.WriteString("<p><strong>Type:</strong> " + html.EscapeString(rec.TypeLabel()) + "</p>")
	if rec.Address != "" {
		b.WriteString("<p><strong>Address:</strong> " + html.EscapeString(rec.Address) + "</p>")
	}
	if link := dialer.Link(rec.Phone); link != "" {
		b.WriteString(`<a href="` + html.EscapeString(link) + `" class="call-button">`)
		b.WriteString(`<i class="fas fa-phone"></i> Call: ` + html.EscapeString(strings.TrimSpace(rec.Phone)))
		b.WriteString("</a>")
	}
	b.WriteString("</div>")
	return b.String()
}

func locationPopup(place string) string {
	if place == "" {
		return userPopup
	}
	return userPopup + "<br>" + html.EscapeString(place)
}
