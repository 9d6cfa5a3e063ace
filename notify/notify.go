// Package notify delivers invitation messages. Delivery is best-effort:
// callers log failures but never roll back the invitation itself.
package notify

import (
	"fmt"
	"log"
	"strings"
)

type Invitation struct {
	Recipient   string // email address or phone number
	FamilyName  string
	InviterName string
	URL         string
}

// Send routes to email or SMS based on the recipient: anything with a "@"
// is treated as an email address
func (n *Invitation) Send() error {
	if strings.Contains(n.Recipient, "@") {
		return n.sendMail()
	}
	return n.sendSMS()
}

// sendSMS is a stub: a real integration (Twilio, MessageBird, ...) would go
// here. TODO: wire up an SMS provider once one is picked
func (n *Invitation) sendSMS() error {
	log.Printf("SMS dispatch (stub) to %s: %s", n.Recipient, n.URL)
	return nil
}

func (n *Invitation) subject() string {
	return fmt.Sprintf("Invitación a unirse a la familia %s en Coparentalidad", n.FamilyName)
}
