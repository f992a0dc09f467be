// Package gemini implements sitechat.Answerer using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/duna-akin/sitechat"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Answerer implements sitechat.Answerer at compile time.
var _ sitechat.Answerer = (*Answerer)(nil)

// Answerer implements sitechat.Answerer using Google Gemini.
type Answerer struct {
	client *genai.Client
	domain string
}

// NewAnswerer creates a new Answerer for questions about the given domain.
func NewAnswerer(client *genai.Client, domain string) *Answerer {
	return &Answerer{client: client, domain: domain}
}

// Answer generates an answer grounded in the bundle's page excerpts.
// Prior exchanges are replayed as conversation turns so follow-up
// questions keep their referents.
func (a *Answerer) Answer(ctx context.Context, question string, history []sitechat.Exchange, bundle *sitechat.ContextBundle) (string, error) {
	if question == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "question required")
	}

	contents := BuildContents(question, history, bundle)
	config := BuildConfig(a.domain)

	result, err := a.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", sitechat.Errorf(sitechat.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The system instruction restricts the assistant to the target site.
func BuildConfig(domain string) *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are a helpful assistant answering questions about %s using only the page excerpts provided. Every excerpt is labeled with its source URL. If the excerpts do not contain the answer, say so plainly rather than guessing. If the question is unrelated to %s, politely redirect the user to topics the site covers.", domain, domain),
			}},
		},
		Temperature: &temp,
	}
}

// BuildContents builds the conversation turns sent to the model: prior
// exchanges as alternating user/model turns, then the current question
// with the rendered excerpts.
func BuildContents(question string, history []sitechat.Exchange, bundle *sitechat.ContextBundle) []*genai.Content {
	var contents []*genai.Content
	for _, x := range history {
		contents = append(contents,
			&genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: x.Question}},
			},
			&genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: x.Answer}},
			},
		)
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: BuildUserPrompt(question, bundle)}},
	})
	return contents
}

// BuildUserPrompt frames the excerpts and the question for the model.
func BuildUserPrompt(question string, bundle *sitechat.ContextBundle) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	if !bundle.Empty() {
		for i, e := range bundle.Excerpts {
			title := e.Title
			if title == "" {
				title = e.SourceURL
			}
			sb.WriteString("<document>\n")
			fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
			fmt.Fprintf(&sb, "<title>%s</title>\n", title)
			fmt.Fprintf(&sb, "<source>%s</source>\n", e.SourceURL)
			fmt.Fprintf(&sb, "<content>%s</content>\n", e.Text)
			sb.WriteString("</document>\n")
		}
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
