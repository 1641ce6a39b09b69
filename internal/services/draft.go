package services

import (
	"fmt"
	"regexp"
	"strings"

	"eventconnect/internal/domain"
)

// System persona used for every outreach generation call.
const outreachPersona = "You are a professional event planner who writes clear, concise, and friendly business emails."

var (
	subjectMarkerRegex = regexp.MustCompile(`(?m)SUBJECT:[ \t]*(.+)`)
	bodyMarkerRegex    = regexp.MustCompile(`(?s)BODY:\s*(.+)`)
)

// emailDraft is the tagged result of parsing a generated email.
// Fallback is true when a marker was missing and a default was substituted.
type emailDraft struct {
	Subject  string
	Body     string
	Fallback bool
}

// parseEmailDraft extracts subject and body from the model output, which is
// expected to follow the "SUBJECT: ... BODY: ..." convention. A missing
// subject marker yields the deterministic default "Inquiry: {event name}";
// a missing body marker yields the raw text verbatim. Never fails.
func parseEmailDraft(raw, eventName string) emailDraft {
	draft := emailDraft{}
	if m := subjectMarkerRegex.FindStringSubmatch(raw); m != nil {
		draft.Subject = strings.TrimSpace(m[1])
	} else {
		draft.Subject = "Inquiry: " + eventName
		draft.Fallback = true
	}
	if m := bodyMarkerRegex.FindStringSubmatch(raw); m != nil {
		draft.Body = strings.TrimSpace(m[1])
	} else {
		draft.Body = raw
		draft.Fallback = true
	}
	return draft
}

// buildOutreachPrompt renders the user prompt for one (event, partner,
// category) selection.
func buildOutreachPrompt(event *domain.EventRequest, partner *domain.Partner, serviceType string) string {
	var b strings.Builder
	b.WriteString("Generate a professional, personalized email inquiry for an event.\n\n")
	b.WriteString("Event Details:\n")
	fmt.Fprintf(&b, "- Event Name: %s\n", event.EventName)
	fmt.Fprintf(&b, "- Event Type: %s\n", event.EventType)
	fmt.Fprintf(&b, "- Date: %s\n", event.EventDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Attendees: %d\n", event.Attendees)
	fmt.Fprintf(&b, "- City: %s\n", event.City)
	if event.Budget != nil {
		fmt.Fprintf(&b, "- Budget: $%.0f\n", *event.Budget)
	} else {
		b.WriteString("- Budget: Not specified\n")
	}
	if event.AdditionalNotes != nil && *event.AdditionalNotes != "" {
		fmt.Fprintf(&b, "- Additional Notes: %s\n", *event.AdditionalNotes)
	}
	b.WriteString("\nPartner Information:\n")
	fmt.Fprintf(&b, "- Company: %s\n", partner.CompanyName)
	fmt.Fprintf(&b, "- Service Type: %s\n", serviceType)
	fmt.Fprintf(&b, "- Contact: %s\n", partner.ContactName)
	b.WriteString(`
The email should:
1. Be professional and courteous
2. Clearly state the event requirements
3. Ask for availability and pricing
4. Mention that they can reply directly to this email
5. Be concise (200-300 words)
6. Have a warm, professional tone
`)
	if serviceType == domain.ServiceTypeMerchandise {
		b.WriteString("7. Mention that design files are attached\n")
	}
	b.WriteString(`
Generate both:
1. Email subject line (short and descriptive)
2. Email body

Format your response as:
SUBJECT: [subject line]

BODY:
[email body]`)
	return b.String()
}
