// internal/mailer/templates.go
package mailer

import (
	"fmt"
	"time"
)

// Transactional email bodies. These mirror the admin-panel branding; the
// campaign content itself arrives as ready-made HTML and never goes through
// a template.

const emailStyles = `
    body { margin: 0; padding: 0; font-family: 'Helvetica Neue', Arial, sans-serif; background-color: #faf7f0; color: #4a5239; }
    .container { max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 16px; box-shadow: 0 4px 12px rgba(74, 82, 57, 0.12); overflow: hidden; }
    .header { background-color: #4a5239; color: #faf7f0; padding: 40px 30px; text-align: center; }
    .header h1 { margin: 0; font-size: 32px; letter-spacing: 1px; font-weight: 700; }
    .header p { margin: 10px 0 0; font-size: 14px; opacity: 0.9; }
    .content { padding: 40px 30px; }
    .content h2 { color: #4a5239; font-size: 24px; margin: 0 0 20px; }
    .content p { color: #4a5239; font-size: 16px; line-height: 1.6; margin: 0 0 20px; }
    .button-container { text-align: center; margin: 35px 0; }
    .button { display: inline-block; padding: 16px 40px; background-color: #b85c3c; color: #ffffff !important; text-decoration: none; border-radius: 999px; font-size: 16px; font-weight: 600; }
    .info-box { background-color: rgba(184, 92, 60, 0.08); border-left: 4px solid #b85c3c; padding: 16px 20px; border-radius: 8px; margin: 25px 0; }
    .info-box p { margin: 0; font-size: 14px; color: #4a5239; }
    .footer { background-color: #faf7f0; padding: 30px; text-align: center; border-top: 1px solid #d4b5a8; }
    .footer p { margin: 0 0 10px; font-size: 13px; color: #7a8264; }
    .footer a { color: #b85c3c; text-decoration: none; }
    .link-text { word-break: break-all; font-size: 12px; color: #7a8264; margin-top: 15px; }
`

func MagicLinkEmailHTML(magicLink string, expirationMinutes int) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Enlace de Acceso - BIDXAAGUI</title>
  <style>%s</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>BIDXAAGUI</h1>
      <p>Panel de Administración</p>
    </div>
    <div class="content">
      <h2>¡Tu enlace de acceso está listo!</h2>
      <p>
        Has solicitado acceso al panel de administración de BIDXAAGUI.
        Haz clic en el botón de abajo para iniciar sesión de forma segura.
      </p>
      <div class="button-container">
        <a href="%[2]s" class="button">Acceder al Panel</a>
      </div>
      <div class="info-box">
        <p>
          <strong>⏱️ Importante:</strong> Este enlace expirará en %[3]d minutos
          por razones de seguridad y solo puede usarse una vez.
        </p>
      </div>
      <p style="font-size: 14px; color: #7a8264;">
        Si no solicitaste este acceso, puedes ignorar este correo de forma segura.
        Nadie podrá acceder a tu cuenta sin este enlace.
      </p>
      <p class="link-text">
        Si el botón no funciona, copia y pega este enlace en tu navegador:<br>
        <a href="%[2]s" style="color: #b85c3c;">%[2]s</a>
      </p>
    </div>
    <div class="footer">
      <p><strong>BIDXAAGUI</strong> © %[4]d</p>
      <p>
        Medicina Naturista · Antropología Biológica<br>
        <a href="https://bidxaagui.com">bidxaagui.com</a>
      </p>
    </div>
  </div>
</body>
</html>`, emailStyles, magicLink, expirationMinutes, time.Now().Year())
}

func MagicLinkEmailText(magicLink string, expirationMinutes int) string {
	return fmt.Sprintf(`BIDXAAGUI - Panel de Administración

¡Tu enlace de acceso está listo!

Has solicitado acceso al panel de administración de BIDXAAGUI.

Para iniciar sesión, accede al siguiente enlace:
%s

IMPORTANTE:
- Este enlace expirará en %d minutos por seguridad
- Solo puede usarse una vez
- Si no solicitaste este acceso, ignora este correo

---
BIDXAAGUI © %d
Medicina Naturista · Antropología Biológica
https://bidxaagui.com`, magicLink, expirationMinutes, time.Now().Year())
}

func WelcomeEmailHTML(name, unsubscribeURL string) string {
	greeting := "¡Hola!"
	if name != "" {
		greeting = fmt.Sprintf("Hola %s,", name)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>¡Bienvenido a BIDXAAGUI!</title>
  <style>%s</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>¡Bienvenido a BIDXAAGUI!</h1>
    </div>
    <div class="content">
      <h2>%s</h2>
      <p>¡Gracias por suscribirte a nuestro boletín informativo! Estamos emocionados de tenerte con nosotros.</p>
      <p>Con tu suscripción, recibirás actualizaciones sobre nuestros proyectos, eventos y noticias relevantes.</p>
      <p>Si en algún momento deseas darte de baja, puedes hacerlo haciendo clic en el enlace de cancelar suscripción que aparece al final de cada correo.</p>
      <p>¡Esperamos que disfrutes de nuestro contenido!</p>
      <p>Saludos,<br>El equipo de BIDXAAGUI</p>
    </div>
    <div class="footer">
      <p>© %d BIDXAAGUI. Todos los derechos reservados.</p>
      <p>
        <a href="https://bidxaagui.com" style="color: #b85c3c; text-decoration: none;">Visita nuestro sitio web</a> |
        <a href="%s" style="color: #b85c3c; text-decoration: none;">Cancelar suscripción</a>
      </p>
    </div>
  </div>
</body>
</html>`, emailStyles, greeting, time.Now().Year(), unsubscribeURL)
}

func WelcomeEmailText(name, unsubscribeURL string) string {
	greeting := "¡Hola!"
	if name != "" {
		greeting = fmt.Sprintf("Hola %s,", name)
	}

	return fmt.Sprintf(`%s

¡Gracias por suscribirte a nuestro boletín informativo! Estamos emocionados de tenerte con nosotros.

Con tu suscripción, recibirás actualizaciones sobre nuestros proyectos, eventos y noticias relevantes.

Si en algún momento deseas darte de baja, sigue el enlace de cancelación en el pie de este mensaje.

¡Esperamos que disfrutes de nuestro contenido!

Saludos,
El equipo de BIDXAAGUI

---
© %d BIDXAAGUI. Todos los derechos reservados.
Visita nuestro sitio web: https://bidxaagui.com
Cancelar suscripción: %s`, greeting, time.Now().Year(), unsubscribeURL)
}
