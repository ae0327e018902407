// Package all registers every built-in generation provider with the llm factory.
package all

import (
	_ "labsimplify/internal/llm/bedrock"
	_ "labsimplify/internal/llm/claude"
	_ "labsimplify/internal/llm/gemini"
	_ "labsimplify/internal/llm/huggingface"
	_ "labsimplify/internal/llm/openai"
)
