// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package auth

import "time"

// ResetTokenTTL is how long a password-reset link stays valid.
const ResetTokenTTL = 1 * time.Hour

// Client-facing messages.
const (
	MsgMissingParams      = "Parámetros faltantes."
	MsgInvalidCredentials = "Credenciales inválidas."
	MsgEmailTaken         = "El email ya está registrado."
	MsgLoggedOut          = "Sesión cerrada correctamente."
	MsgActivated          = "Cuenta activada."
	MsgTokenInvalid       = "Token inválido o expirado."
	MsgTokenRequired      = "El token es requerido."
	MsgEmailRequired      = "El email es requerido."
	MsgEmailUnknown       = "El email no está registrado."
	MsgRecoverySent       = "Se envió un enlace de recuperación a tu correo."
	MsgPasswordReset      = "Contraseña actualizada correctamente."
	MsgPasswordTooShort   = "La contraseña debe tener al menos 8 caracteres."
	MsgPasswordTooLong    = "La contraseña no puede superar los 72 bytes."
	MsgInvalidName        = "Solo letras, espacios, guiones, apóstrofos y puntos (2 a 50)."
	MsgUserNotFound       = "Usuario no encontrado."
)

// Link paths appended to the public server URL.
const (
	activationPath = "/auth/activate?token="
	resetPath      = "/reset-password.php?token="
)
