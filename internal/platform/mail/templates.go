// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package mail

// templateSource holds every email layout. html/template escapes Link and Name.
const templateSource = `
{{define "head"}}<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; background-color: #000000; }
.email-container { max-width: 600px; margin: 0 auto; background-color: #141414; }
.content { padding: 0 30px 30px 30px; color: #ffffff; }
.titulo { color: #EFD36C; text-align: center; }
.btn { display: inline-block; padding: 12px 24px; background-color: #EFD36C; color: #000000; border-radius: 5px; margin: 20px 0; font-weight: bold; text-decoration: none; }
.footer { text-align: center; margin-top: 20px; padding: 20px; font-size: 0.9em; color: #6c757d; }
</style>
</head>
<body>
<div class="email-container">
<div class="content">{{end}}

{{define "foot"}}</div>
</div>
<div class="footer">
<p>Este correo se envió automáticamente, por favor no respondas.</p>
<p>Los Reyes del Usado</p>
</div>
</body>
</html>{{end}}

{{define "activation_link"}}{{template "head"}}
<h1 class="titulo">¡Bienvenido!</h1>
<p>Gracias por registrarte. Para activar tu cuenta hacé clic en el botón:</p>
<p style="text-align:center;"><a href="{{.Link}}" class="btn">Activar mi cuenta</a></p>
<p>Si el botón no funciona, copiá y pegá este enlace:</p>
<p style="word-break:break-all;"><a style="color:#EFD36C;" href="{{.Link}}">{{.Link}}</a></p>
{{template "foot"}}{{end}}

{{define "activation_success"}}{{template "head"}}
<h1 class="titulo">Cuenta activada</h1>
<h4>Hola, {{.Name}}</h4>
<p>Ya podés ingresar y publicar en Los Reyes del Usado.</p>
{{template "foot"}}{{end}}

{{define "recovery_link"}}{{template "head"}}
<h1 class="titulo">Recuperación de contraseña</h1>
<p>Recibimos una solicitud para restablecer tu contraseña.</p>
<p style="text-align:center;"><a href="{{.Link}}" class="btn">Restablecer contraseña</a></p>
<p>El enlace vence en una hora. Si no solicitaste este cambio, ignorá este correo.</p>
{{template "foot"}}{{end}}

{{define "password_changed"}}{{template "head"}}
<h1 class="titulo">Contraseña actualizada</h1>
<h4>Hola, {{.Name}}</h4>
<p>Tu contraseña fue cambiada correctamente. Si no fuiste vos, contactanos de inmediato.</p>
{{template "foot"}}{{end}}
`
