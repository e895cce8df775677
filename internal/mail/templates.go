// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mail

import "html/template"

type notificationData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type testData struct {
	Host   string
	Port   int
	Secure bool
}

var notificationTmpl = template.Must(template.New("notification").Parse(`<h3>Nuevo mensaje de contacto</h3>
<p><strong>Nombre:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Asunto:</strong> {{.Subject}}</p>
<div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin-top: 10px;">
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</div>
<p style="font-size: 12px; color: #888; margin-top: 20px;">Enviado desde tu Portfolio Web</p>
`))

var testTmpl = template.Must(template.New("test").Parse(`<h3>Configuración SMTP Correcta</h3>
<p>Este es un correo de prueba para verificar la configuración de tu servidor SMTP.</p>
<ul>
  <li><strong>Host:</strong> {{.Host}}</li>
  <li><strong>Port:</strong> {{.Port}}</li>
  <li><strong>Secure:</strong> {{if .Secure}}Sí{{else}}No{{end}}</li>
</ul>
`))
