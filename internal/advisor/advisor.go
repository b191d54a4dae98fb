package advisor

import (
	"context"
	"errors"
	"fmt"

	"kospi-insight/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnavailable is returned when the language model could not answer.
var ErrUnavailable = errors.New("advisor unavailable")

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// StockQuerier provides the analysis the advisor talks about.
type StockQuerier interface {
	Stocks() []domain.Stock
	Snapshot(ctx context.Context, code string) (*domain.Snapshot, error)
}

type AdvisorService struct {
	tracer trace.Tracer
	llm    LLMClient
	stocks StockQuerier
	model  string
}

func NewAdvisorService(tracer trace.Tracer, llm LLMClient, stocks StockQuerier, model string) *AdvisorService {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AdvisorService{
		tracer: tracer,
		llm:    llm,
		stocks: stocks,
		model:  model,
	}
}

// Commentary explains the statistics and prediction of a single code in
// plain language. Analysis errors are returned unchanged so callers can map
// them like any other analysis failure.
func (s *AdvisorService) Commentary(ctx context.Context, code string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.commentary")
	defer span.End()
	span.SetAttributes(attribute.String("code", code))

	snap, err := s.stocks.Snapshot(ctx, code)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(BuildSystemPrompt(FormatSnapshots([]*domain.Snapshot{snap}))),
		openai.UserMessage(fmt.Sprintf("Summarize how %s (%s) has been trading and what the momentum score says.", snap.Stock.Name, snap.Stock.Code)),
	}
	return s.complete(ctx, span, messages)
}

// Ask answers a free-form question. Stocks mentioned by name or code are
// analysed and handed to the model as context.
func (s *AdvisorService) Ask(ctx context.Context, question string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.ask")
	defer span.End()

	mentioned := ExtractStocks(question, s.stocks.Stocks())
	span.SetAttributes(attribute.Int("mentioned_stocks", len(mentioned)))

	snaps := make([]*domain.Snapshot, 0, len(mentioned))
	for _, st := range mentioned {
		snap, err := s.stocks.Snapshot(ctx, st.Code)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("code", st.Code).Msg("failed to gather stock context")
			continue
		}
		snaps = append(snaps, snap)
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(BuildSystemPrompt(FormatSnapshots(snaps))),
		openai.UserMessage(question),
	}
	return s.complete(ctx, span, messages)
}

func (s *AdvisorService) complete(
	ctx context.Context,
	parent trace.Span,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	reply, err := s.callLLM(ctx, messages)
	if err != nil {
		parent.RecordError(err)
		parent.SetStatus(codes.Error, "llm call failed")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return reply, nil
}

func (s *AdvisorService) callLLM(
	ctx context.Context,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.llm-call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", s.model),
		attribute.Int("llm.message_count", len(messages)),
	)

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
