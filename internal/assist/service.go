package assist

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Fallback texts used when the model returns nothing or fails
const (
	TermsEmptyFallback    = "Payment due on receipt."
	TermsErrorFallback    = "Payment due within 30 days. Please include invoice number on check."
	ThankYouEmptyFallback = "Thank you for your business!"
	ThankYouErrorFallback = "Thank you for your valued business. We look forward to working with you again."
)

// Service drafts invoice text. Its methods never fail; errors are logged and
// replaced by a fixed fallback.
type Service struct {
	gen Generator
}

// NewService creates a new Service
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Terms drafts payment terms for a business and a summary of what it sells
func (s *Service) Terms(ctx context.Context, businessName, itemsDescription string) string {
	prompt := fmt.Sprintf(`Generate professional, concise invoice terms and conditions for a business named %q.
The business generally provides: %s.
Limit to 3 short bullet points. plain text.
Focus on payment deadlines and late fees.`, businessName, itemsDescription)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		zap.L().Warn("failed to generate terms", zap.Error(err))
		return TermsErrorFallback
	}
	if text == "" {
		return TermsEmptyFallback
	}
	return text
}

// ThankYouNote drafts a short note from the business to the recipient
func (s *Service) ThankYouNote(ctx context.Context, recipientName, businessName string) string {
	prompt := fmt.Sprintf(`Write a short, warm, professional thank you note for an invoice.
From: %s
To: %s
Keep it under 30 words.`, businessName, recipientName)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		zap.L().Warn("failed to generate thank-you note", zap.Error(err))
		return ThankYouErrorFallback
	}
	if text == "" {
		return ThankYouEmptyFallback
	}
	return text
}

// ItemDescription rewrites a rough line item description. The input comes
// back unchanged when nothing usable is generated.
func (s *Service) ItemDescription(ctx context.Context, rough string) string {
	prompt := fmt.Sprintf(`Rewrite this rough invoice item description to sound more professional: %q.
Output only the description, nothing else.`, rough)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		zap.L().Warn("failed to rewrite item description", zap.Error(err))
		return rough
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", ""))
	if text == "" {
		return rough
	}
	return text
}

// SummarizeItems joins item descriptions for the terms prompt
func SummarizeItems(descriptions []string) string {
	out := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return "general services"
	}
	return strings.Join(out, ", ")
}
