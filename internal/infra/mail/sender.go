package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/xavierca1/buyer-intake/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

var leadAlertTmpl = template.Must(template.New("leadAlert").Parse(`
<p>A new buyer lead just came in:</p>
<ul>
  <li><b>Name:</b> {{.FullName}}</li>
  <li><b>Looking for:</b> {{.PropertyType}} in {{.City}}</li>
  <li><b>Phone:</b> {{.Phone}}</li>
  {{if .Email}}<li><b>Email:</b> {{.Email}}</li>{{end}}
</ul>
<p>Follow up while it is still warm.</p>
`))

var importSummaryTmpl = template.Must(template.New("importSummary").Parse(`
<p>A CSV import just finished.</p>
<ul>
  <li><b>Inserted:</b> {{.Inserted}}</li>
  <li><b>Rejected rows:</b> {{.Rejected}}</li>
</ul>
`))

func NewEmailSender(host string, port int, user, password, from, notifyTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		NotifyTo: notifyTo,
	}
}

func (s *EmailSender) SendNewLeadAlert(p queue.LeadEventPayload) error {
	data := LeadAlertData{
		FullName:     p.FullName,
		City:         p.City,
		PropertyType: p.PropertyType,
		Phone:        p.Phone,
		Email:        p.Email,
	}

	var body bytes.Buffer
	if err := leadAlertTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering lead alert: %w", err)
	}

	subject := fmt.Sprintf("New lead: %s (%s, %s)", p.FullName, p.PropertyType, p.City)
	return s.send(subject, body.String())
}

func (s *EmailSender) SendImportSummary(p queue.LeadEventPayload) error {
	data := ImportSummaryData{
		Inserted: p.Inserted,
		Rejected: p.Rejected,
	}

	var body bytes.Buffer
	if err := importSummaryTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering import summary: %w", err)
	}

	subject := fmt.Sprintf("Lead import finished: %d inserted, %d rejected", p.Inserted, p.Rejected)
	return s.send(subject, body.String())
}

func (s *EmailSender) send(subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.NotifyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending notification email: %w", err)
	}
	return nil
}
