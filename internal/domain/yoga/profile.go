// Package yoga implements the yoga teacher insurance advisor:
// its coverage catalog, provider comparison, tool set, and system prompt.
package yoga

import (
	"context"
	"fmt"

	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/domain"
)

var pageContexts = map[string]string{
	"best-yoga-teacher-insurance-uk":     "The user is on the PROVIDER COMPARISON page. Help them compare providers and narrow down the best fit.",
	"hot-yoga-insurance":                 "The user is on the HOT YOGA INSURANCE page. They likely teach heated classes; flag that heat must be named on the policy.",
	"pilates-instructor-insurance":       "The user is on the PILATES INSURANCE page. Ask about mat versus reformer teaching.",
	"yoga-alliance-insurance-uk":         "The user is on the YOGA ALLIANCE page. They may be a registered member looking for member cover.",
	"fitness-instructor-insurance-uk":    "The user is on the FITNESS INSTRUCTOR page. They may teach group fitness alongside yoga.",
	"group-fitness-instructor-insurance": "The user is on the GROUP FITNESS page. Ask about class sizes and venues.",
	"how-much-yoga-teacher-insurance-cost": "The user is on the PRICING page. Be specific about monthly costs and what drives them up.",
	"case-studies":                       "The user is on the CASE STUDIES page. Share relevant examples of teachers we've covered.",
	"contact":                            "The user is on the CONTACT page. They're ready to talk - help them book a quote callback.",
	"homepage":                           "The user is on the HOMEPAGE. Understand their teaching and guide them to relevant information.",
}

// NewProfile assembles the yoga insurance advisor profile.
func NewProfile(ctx context.Context) (*domain.Profile, error) {
	systemPrompt, err := RenderSystemPrompt(ctx)
	if err != nil {
		return nil, fmt.Errorf("yoga profile: %w", err)
	}
	return &domain.Profile{
		Name:          "yoga-insurance-agent",
		Title:         "Yoga Teacher Insurance AI Advisor",
		SessionPrefix: "yoga_",
		SystemPrompt:  systemPrompt,
		FallbackReply: "Sorry, I couldn't process that request. Try asking about yoga teacher insurance!",
		Turn: identity.TurnContext{
			Pages:       pageContexts,
			DefaultPage: "homepage",
		},
		Tools: Tools(),
		TraitLabels: []domain.TraitLabel{
			{Label: "Styles Taught", Empty: "Not specified"},
			{Label: "Teaching Locations", Empty: "Not specified"},
			{Label: "Experience Level", Empty: "Not discussed"},
			{Label: "Current Cover", Empty: "Not discussed yet"},
			{Label: "Budget Range", Empty: "Not discussed"},
		},
	}, nil
}
