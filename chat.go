package docnorm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
)

// systemPrompt frames the knowledge-base analysis conversation.
const systemPrompt = "You are a helpful assistant. Your goal is to analyze markdown files " +
	"from a corporate knowledge base. The files you will examine are highly technical, " +
	"and may focus on hardware, software, or a mixture of the two. Focus on technical " +
	"information rather than metadata such as author and creation date."

// userPromptTemplate asks for a summary plus triple-quoted categories.
const userPromptTemplate = "Please read the following markdown file carefully. " +
	"Summarize the main points and topics in this document. Afterwards, identify 3-5 " +
	"primary technical categories using the following notation (encased in triple " +
	"quotes):\n\n\"\"\"Categories: Item 1, Item 2, Item 3, etc.\"\"\"\n\n" +
	"FILE:\n```markdown\n%s\n```"

// categoryBlock matches the triple-quoted or fenced category block in a
// model response.
var categoryBlock = regexp.MustCompile(`(?s)"""(.*?)"""|` + "```(.*?)```")

// ChatClient abstracts chat completions so tests can stub the API.
type ChatClient interface {
	Complete(ctx context.Context, model, system, user string, temperature float32) (string, error)
}

// OpenAIChatClient implements ChatClient against the OpenAI API.
type OpenAIChatClient struct {
	client *openai.Client
}

// NewOpenAIChatClient creates a chat client with the given API key.
func NewOpenAIChatClient(apiKey string) *OpenAIChatClient {
	return &OpenAIChatClient{client: openai.NewClient(apiKey)}
}

// Complete sends a system+user conversation and returns the assistant text.
func (c *OpenAIChatClient) Complete(ctx context.Context, model, system, user string, temperature float32) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChat, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrChat)
	}
	return resp.Choices[0].Message.Content, nil
}

// Summary is the outcome of summarizing one document.
type Summary struct {
	Message    string   // full assistant response
	Categories []string // extracted category blocks, raw text
	Model      string   // model tier used
	Tokens     int      // token count of the document
}

// Summarizer routes documents to a chat model tier by token count and
// extracts technical categories from the response.
type Summarizer struct {
	chat       ChatClient
	tokens     TokenCounter
	thresholds BucketThresholds
}

// NewSummarizer creates a Summarizer. A nil counter falls back to the
// tiktoken counter; zero thresholds fall back to the defaults.
func NewSummarizer(chat ChatClient, tokens TokenCounter, thresholds BucketThresholds) *Summarizer {
	if tokens == nil {
		tokens = NewTiktokenCounter()
	}
	if thresholds == (BucketThresholds{}) {
		thresholds = DefaultBucketThresholds()
	}
	return &Summarizer{chat: chat, tokens: tokens, thresholds: thresholds}
}

// Summarize sends the document to the model tier matching its token count.
// Documents routed to the long bucket are rejected with ErrDocumentTooLong.
func (s *Summarizer) Summarize(ctx context.Context, content string) (*Summary, error) {
	if !utf8.ValidString(content) {
		return nil, ErrInvalidInput
	}

	count, err := s.tokens.CountTokens(content)
	if err != nil {
		return nil, err
	}
	model := s.thresholds.Model(count)
	if model == "" {
		return nil, fmt.Errorf("%w: %d tokens", ErrDocumentTooLong, count)
	}

	message, err := s.chat.Complete(ctx, model, systemPrompt, fmt.Sprintf(userPromptTemplate, content), 0)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Message:    message,
		Categories: ParseCategories(message),
		Model:      model,
		Tokens:     count,
	}, nil
}

// ParseCategories extracts category blocks from an assistant response,
// accepting both the requested triple-quote notation and fenced blocks the
// model sometimes produces instead.
func ParseCategories(message string) []string {
	var categories []string
	for _, match := range categoryBlock.FindAllStringSubmatch(message, -1) {
		block := match[1]
		if block == "" {
			block = match[2]
		}
		block = strings.TrimSpace(block)
		if block != "" {
			categories = append(categories, block)
		}
	}
	return categories
}
