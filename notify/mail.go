package notify

import (
	"errors"
	"fmt"

	"coparent/config"

	"gopkg.in/gomail.v2"
)

const inviteMailBody = `
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #4F46E5;">Invitación a Coparentalidad</h2>
		<p>Hola,</p>
		<p>%s te ha invitado a unirte a la familia "%s" en la plataforma Coparentalidad.</p>
		<p>Coparentalidad es una aplicación que facilita la gestión compartida de la crianza de los hijos entre progenitores.</p>
		<p>Para aceptar esta invitación, haz clic en el siguiente enlace:</p>
		<p>
			<a href="%s" style="display: inline-block; background-color: #4F46E5; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">
				Aceptar invitación
			</a>
		</p>
		<p>Este enlace expirará en 7 días.</p>
		<p>Si no esperabas esta invitación, puedes ignorar este mensaje.</p>
		<p>Saludos,<br>El equipo de Coparentalidad</p>
	</div>
`

func (n *Invitation) sendMail() error {
	if config.SMTP_HOST == "" {
		return errors.New("SMTP not configured")
	}
	inviter := n.InviterName
	if inviter == "" {
		inviter = "Un usuario"
	}
	message := gomail.NewMessage()
	message.SetHeader("From", config.SMTP_FROM)
	message.SetHeader("To", n.Recipient)
	message.SetHeader("Subject", n.subject())
	message.SetBody("text/html", fmt.Sprintf(inviteMailBody, inviter, n.FamilyName, n.URL))
	dialer := gomail.NewDialer(config.SMTP_HOST, config.SMTP_PORT, config.SMTP_USER, config.SMTP_PASSWORD)
	return dialer.DialAndSend(message)
}
