package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"labsimplify/internal/config"
	"labsimplify/internal/llm"
	"labsimplify/internal/port"
)

const defaultModel = "anthropic.claude-3-haiku-20240307-v1:0"

func init() {
	llm.RegisterProvider("bedrock", func(ctx context.Context, cfg *config.GeneratorConfig) (port.GenerationBackend, error) {
		return NewBackend(ctx, cfg)
	})
}

// ConverseAPI is the subset of the Bedrock runtime client the backend calls.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Backend implements port.GenerationBackend using the Bedrock Converse API.
type Backend struct {
	api     ConverseAPI
	modelID string
}

// NewBackend loads AWS configuration for the configured region. Static keys are
// used when both are set; otherwise the default credential chain applies.
func NewBackend(ctx context.Context, cfg *config.GeneratorConfig) (*Backend, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var brOpts []func(*bedrockruntime.Options)
	if cfg.Endpoint != "" {
		brOpts = append(brOpts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return NewBackendWithAPI(bedrockruntime.NewFromConfig(awsCfg, brOpts...), cfg.Model), nil
}

// NewBackendWithAPI creates a backend around an existing Converse client.
func NewBackendWithAPI(api ConverseAPI, modelID string) *Backend {
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultModel
	}
	return &Backend{api: api, modelID: modelID}
}

func (b *Backend) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	inference := &brtypes.InferenceConfiguration{
		Temperature: aws.Float32(opts.Temperature),
	}
	if opts.MaxOutputTokens > 0 {
		inference.MaxTokens = aws.Int32(opts.MaxOutputTokens)
	}

	out, err := b.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(b.modelID),
		Messages: []brtypes.Message{
			{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: prompt},
				},
			},
		},
		InferenceConfig: inference,
	})
	if err != nil {
		return "", mapError(err)
	}

	return outputText(out)
}

func outputText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil {
		return "", errors.New("empty response from API: nil output")
	}
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("empty response from API: no message output")
	}

	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("empty response from API: no text content blocks")
	}
	return sb.String(), nil
}

// mapError turns throttling into a rate-limit error. Other smithy errors keep their
// HTTPStatusCode and are classified by llm.IsTransient directly.
func mapError(err error) error {
	var throttled *brtypes.ThrottlingException
	if errors.As(err, &throttled) {
		return llm.NewRateLimitError("bedrock", err, 0)
	}
	return fmt.Errorf("calling bedrock API: %w", err)
}
