// Package ai generates hint suggestions for words through an
// OpenAI-compatible model. It is optional: without an API key the rest of
// the application runs unchanged.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/example/vocabot/internal/config"
	"github.com/example/vocabot/pkg/models"
)

const systemPrompt = "You help language learners build memory aids for vocabulary. " +
	"Reply with the aid text only, one or two short sentences, no preamble."

// Suggester asks a chat model for hint text.
type Suggester struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// New creates a suggester from configuration. Callers treat a missing API
// key as the feature being disabled rather than a fatal problem.
func New(cfg *config.Config) (*Suggester, error) {
	if cfg.OpenAIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	return &Suggester{
		client:      openai.NewClient(cfg.OpenAIKey),
		model:       cfg.OpenAIModel,
		maxTokens:   100,
		temperature: 0.7,
	}, nil
}

// SuggestHint produces candidate text for one hint type. Nothing is stored
// here; the caller decides whether to keep the suggestion.
func (s *Suggester) SuggestHint(ctx context.Context, word *models.Word, hintType models.HintType) (string, error) {
	if !hintType.Valid() {
		return "", errors.Errorf("unknown hint type %q", hintType)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: hintPrompt(word, hintType)},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "hint suggestion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no suggestion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// hintPrompt phrases the request for one hint type.
func hintPrompt(word *models.Word, hintType models.HintType) string {
	base := fmt.Sprintf("The word %q translates to %q.", word.WordForeign, word.Translation)
	if word.Transcription != "" {
		base += fmt.Sprintf(" Its transcription is [%s].", word.Transcription)
	}

	switch hintType {
	case models.HintMeaning:
		return base + " Suggest a meaning hint: a short association that points at what the word means without stating the translation outright."
	case models.HintPhoneticSound:
		return base + " Suggest a pronunciation hint: describe what the word sounds like using simple, familiar sounds."
	case models.HintPhoneticAssociation:
		return base + " Suggest a sound-alike mnemonic: a familiar word or phrase that sounds similar and links to the meaning."
	case models.HintWriting:
		return base + " Suggest a spelling hint: a short cue for remembering how the word is written."
	}
	return base
}
