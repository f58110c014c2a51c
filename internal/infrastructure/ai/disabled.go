package ai

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
)

var _ ports.TextGenerator = Disabled{}

// Disabled generador que siempre falla: Smart Buy responde con el texto de respaldo.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: proveedor de IA deshabilitado", domain.ErrAIGateway)
}
