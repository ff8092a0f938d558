package main

import (
	"bytes"
	"html/template"
	"log"
	"time"

	"github.com/go-mail/mail/v2"
)

type mailer struct {
	dailer *mail.Dialer
	sender string
}

func newMailer(host string, port int, username string, password string, sender string) *mailer {
	dailer := mail.NewDialer(host, port, username, password)
	return &mailer{
		dailer: dailer,
		sender: sender,
	}
}

func (m *mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	err := tmpl.ExecuteTemplate(&subject, "subject", data)
	if err != nil {
		return err
	}
	var plainBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&plainBody, "plainBody", data)
	if err != nil {
		return err
	}
	var htmlBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.SetBody("text/html", htmlBody.String())

	for i := 0; i < 3; i++ {
		err = m.dailer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}

const dueSoonWindow = 24 * time.Hour

var digestTemplate = template.Must(template.New("digest").Parse(`
{{define "subject"}}{{len .Tasks}} task(s) due in the next 24 hours{{end}}
{{define "plainBody"}}Hi {{.Name}},

The following tasks are due soon:
{{range .Tasks}}
- {{.Title}} (due {{.DueDate}}, priority {{.Priority}})
{{- end}}
{{end}}
{{define "htmlBody"}}<p>Hi {{.Name}},</p>
<p>The following tasks are due soon:</p>
<ul>
{{range .Tasks}}<li><strong>{{.Title}}</strong> (due {{.DueDate}}, priority {{.Priority}})</li>
{{end}}</ul>
{{end}}`))

// dueSoonTasks returns the open tasks whose due date falls before the
// reminder window closes, overdue tasks included. Unparsable due dates are
// skipped.
func dueSoonTasks(tasks []task, now time.Time) []task {
	cutoff := now.Add(dueSoonWindow)
	due := make([]task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != statusOpen {
			continue
		}
		d, err := time.Parse(time.RFC3339, t.DueDate)
		if err != nil {
			continue
		}
		if d.Before(cutoff) {
			due = append(due, t)
		}
	}
	return due
}

// sendDueSoonDigest mails the signed-in user a digest of open tasks due
// within the reminder window. Nothing is sent when no user is cached or
// nothing is due.
func (app *application) sendDueSoonDigest() {
	u := app.store.readUser()
	if u == nil {
		return
	}
	due := dueSoonTasks(app.repo.all(), time.Now())
	if len(due) == 0 {
		return
	}
	data := struct {
		Name  string
		Tasks []task
	}{Name: u.Name, Tasks: due}
	if err := app.mailer.send(u.Email, digestTemplate, data); err != nil {
		log.Println("error sending due-soon digest:", err)
		return
	}
	log.Printf("sent due-soon digest with %d task(s) to %s", len(due), u.Email)
}

func (app *application) startReminderTicker(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		for {
			<-ticker.C
			app.sendDueSoonDigest()
		}
	}()
}
