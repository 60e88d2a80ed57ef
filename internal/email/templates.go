// Package email renders the transactional email templates.
package email

import (
	"fmt"

	"github.com/comptlabs/waitlist/internal/domain"
)

// Message is a rendered email ready to hand to the delivery client.
type Message struct {
	Template domain.WelcomeTemplate
	Subject  string
	HTML     string
	Text     string
}

// Welcome renders the welcome email for one signup. The template is chosen
// solely by the beta-tester flag.
func Welcome(firstName string, isBetaTester bool) Message {
	greeting := "Hi there"
	if firstName != "" {
		greeting = "Hi " + firstName
	}

	if isBetaTester {
		return Message{
			Template: domain.TemplateBetaTester,
			Subject:  "Welcome to the beta — you're in!",
			HTML: fmt.Sprintf(`<h2>%s,</h2>
<p>Thanks for joining the beta program. You're on the shortlist: we'll reach out
with early access instructions before the public launch.</p>
<p>In the meantime, reply to this email with anything you'd like the product to
do on day one — beta feedback goes straight to the team.</p>
<p>— The Compt team</p>`, greeting),
			Text: fmt.Sprintf(`%s,

Thanks for joining the beta program. You're on the shortlist: we'll reach out
with early access instructions before the public launch.

In the meantime, reply to this email with anything you'd like the product to do
on day one - beta feedback goes straight to the team.

- The Compt team`, greeting),
		}
	}

	return Message{
		Template: domain.TemplateRegular,
		Subject:  "You're on the waitlist",
		HTML: fmt.Sprintf(`<h2>%s,</h2>
<p>Thanks for signing up. You're on the waitlist and we'll email you the moment
your spot opens up.</p>
<p>— The Compt team</p>`, greeting),
		Text: fmt.Sprintf(`%s,

Thanks for signing up. You're on the waitlist and we'll email you the moment
your spot opens up.

- The Compt team`, greeting),
	}
}

// Test renders the diagnostics test email.
func Test(to string) Message {
	return Message{
		Subject: "Email service test",
		HTML:    fmt.Sprintf("<p>This is a test message confirming the email service can deliver to <strong>%s</strong>.</p>", to),
		Text:    fmt.Sprintf("This is a test message confirming the email service can deliver to %s.", to),
	}
}
