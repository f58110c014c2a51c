package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
)

var _ ports.TextGenerator = (*OpenAIService)(nil)

// OpenAIService adaptador sobre la Responses API de OpenAI.
// Pide salida estructurada {"suggestion": "..."} con JSON Schema estricto y devuelve solo el texto.
type OpenAIService struct {
	client *openai.Client
	apiKey string
	model  string
	schema map[string]any
}

// NewOpenAIService construye el adaptador. baseURL vacío usa el endpoint público.
func NewOpenAIService(apiKey, model, baseURL string) (*OpenAIService, error) {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	schema, err := suggestionSchema()
	if err != nil {
		return nil, err
	}
	return &OpenAIService{client: &client, apiKey: apiKey, model: model, schema: schema}, nil
}

// Generate llama a Responses.New una sola vez (sin reintentos).
func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY no configurado", domain.ErrAIGateway)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(s.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "smart_buy_suggestion",
					Strict:      param.NewOpt(true),
					Schema:      s.schema,
					Description: param.NewOpt("Sugerencia de compra para un pequeño negocio"),
				},
			},
		},
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: openai responses: %v", domain.ErrAIGateway, err)
	}

	content := strings.TrimSpace(resp.OutputText())
	if content == "" {
		return "", fmt.Errorf("%w: OpenAI devolvió respuesta vacía", domain.ErrAIGateway)
	}

	var out dto.SmartBuyResponse
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", fmt.Errorf("%w: parsear salida estructurada: %v", domain.ErrAIGateway, err)
	}
	return out.Suggestion, nil
}

// suggestionSchema refleja dto.SmartBuyResponse como mapa para el campo Schema de la API.
func suggestionSchema() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	raw, err := json.Marshal(reflector.Reflect(&dto.SmartBuyResponse{}))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return m, nil
}
