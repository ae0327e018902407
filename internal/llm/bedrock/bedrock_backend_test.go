package bedrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsimplify/internal/llm"
	"labsimplify/internal/llm/bedrock"
	"labsimplify/internal/port"
)

type fakeConverse struct {
	out   *bedrockruntime.ConverseOutput
	err   error
	input *bedrockruntime.ConverseInput
}

func (f *fakeConverse) Converse(_ context.Context, params *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.input = params
	return f.out, f.err
}

func messageOutput(blocks ...brtypes.ContentBlock) *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{
			Value: brtypes.Message{Role: brtypes.ConversationRoleAssistant, Content: blocks},
		},
	}
}

func TestBackend_Generate_Success(t *testing.T) {
	fake := &fakeConverse{out: messageOutput(
		&brtypes.ContentBlockMemberText{Value: `{"summary":"ok",`},
		&brtypes.ContentBlockMemberText{Value: `"findings":[]}`},
	)}
	b := bedrock.NewBackendWithAPI(fake, "")

	text, err := b.Generate(context.Background(), "the prompt", port.GenerateOptions{Temperature: 0.2, MaxOutputTokens: 800})

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok","findings":[]}`, text)

	require.NotNil(t, fake.input)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", aws.ToString(fake.input.ModelId))
	require.Len(t, fake.input.Messages, 1)
	assert.Equal(t, brtypes.ConversationRoleUser, fake.input.Messages[0].Role)
	assert.Equal(t, int32(800), aws.ToInt32(fake.input.InferenceConfig.MaxTokens))
	assert.InDelta(t, 0.2, aws.ToFloat32(fake.input.InferenceConfig.Temperature), 0.0001)
}

func TestBackend_Generate_NoTextBlocks(t *testing.T) {
	fake := &fakeConverse{out: messageOutput()}
	b := bedrock.NewBackendWithAPI(fake, "model")

	_, err := b.Generate(context.Background(), "p", port.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content blocks")
}

func TestBackend_Generate_Throttled(t *testing.T) {
	fake := &fakeConverse{err: &brtypes.ThrottlingException{Message: aws.String("slow down")}}
	b := bedrock.NewBackendWithAPI(fake, "model")

	_, err := b.Generate(context.Background(), "p", port.GenerateOptions{})

	var rlErr *llm.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "bedrock", rlErr.Provider)
}

func TestBackend_Generate_OtherError(t *testing.T) {
	fake := &fakeConverse{err: &brtypes.ValidationException{Message: aws.String("bad input")}}
	b := bedrock.NewBackendWithAPI(fake, "model")

	_, err := b.Generate(context.Background(), "p", port.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling bedrock API")
	assert.False(t, llm.IsTransient(err))
}
