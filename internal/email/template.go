package email

import (
	"bytes"
	"html/template"
)

const acknowledgmentSubject = "Thanks for contacting!"

var acknowledgmentTmpl = template.Must(template.New("ack").Parse(`<div>
  <h2>Hi {{.Name}},</h2>
  <p>Thanks for your message: "{{.Message}}".</p>
  <p>I'll get back to you soon!</p>
  <p>Best regards,<br>{{.Signature}}</p>
</div>
`))

// renderAcknowledgment arma el cuerpo HTML; html/template escapa nombre y mensaje.
func renderAcknowledgment(ack Acknowledgment, signature string) (string, error) {
	if signature == "" {
		signature = "Your Portfolio Site"
	}
	var buf bytes.Buffer
	err := acknowledgmentTmpl.Execute(&buf, struct {
		Name      string
		Message   string
		Signature string
	}{
		Name:      ack.Name,
		Message:   ack.Message,
		Signature: signature,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
