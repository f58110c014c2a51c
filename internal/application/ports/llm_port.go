package ports

import "context"

// TextGenerator define el puerto de salida hacia el modelo de lenguaje: texto in, texto out.
// Cualquier adaptador (Gemini, Anthropic, OpenAI, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
