package ports

import "context"

// ExternalIdentity datos básicos del usuario devueltos por el proveedor OAuth.
type ExternalIdentity struct {
	Email         string
	Name          string
	EmailVerified bool
}

// OAuthProvider abstrae el flujo authorization-code de un proveedor externo (Google).
type OAuthProvider interface {
	AuthCodeURL(state string) string
	// Exchange canjea el código por un token y consulta la identidad del usuario.
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}
