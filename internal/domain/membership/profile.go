// Package membership implements the membership marketing consultant:
// its service catalog, tool set, system prompt, and page contexts.
package membership

import (
	"context"
	"fmt"

	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/domain"
)

var pageContexts = map[string]string{
	"member-acquisition":  "The user is on the MEMBER ACQUISITION page. Focus on growth strategies, digital campaigns, and new member conversion.",
	"member-retention":    "The user is on the MEMBER RETENTION page. Focus on churn reduction, renewal optimisation, and win-back campaigns.",
	"member-engagement":   "The user is on the MEMBER ENGAGEMENT page. Focus on community, events, content, and increasing participation.",
	"content-marketing":   "The user is on the CONTENT MARKETING page. Focus on thought leadership, visibility, and brand authority.",
	"membership-strategy": "The user is on the MEMBERSHIP STRATEGY page. Focus on proposition, pricing, and transformation.",
	"professional-bodies": "The user is on the PROFESSIONAL BODIES page. They likely represent accountants, engineers, lawyers, or similar.",
	"trade-associations":  "The user is on the TRADE ASSOCIATIONS page. They likely represent businesses in a specific industry.",
	"membership-charities": "The user is on the MEMBERSHIP CHARITIES page. They likely work with supporters and donors.",
	"case-studies":        "The user is on the CASE STUDIES page. Share relevant success stories and results.",
	"contact":             "The user is on the CONTACT page. They're ready to talk - help them book a consultation.",
	"homepage":            "The user is on the HOMEPAGE. Understand their needs and guide them to relevant information.",
}

// NewProfile assembles the membership consultant profile.
func NewProfile(ctx context.Context) (*domain.Profile, error) {
	systemPrompt, err := RenderSystemPrompt(ctx)
	if err != nil {
		return nil, fmt.Errorf("membership profile: %w", err)
	}
	return &domain.Profile{
		Name:          "membership-marketing-agent",
		Title:         "Membership Marketing Agency AI Consultant",
		SessionPrefix: "membership_",
		SystemPrompt:  systemPrompt,
		FallbackReply: "Sorry, I couldn't process that request. Try asking about membership marketing!",
		Turn: identity.TurnContext{
			Pages:       pageContexts,
			DefaultPage: "homepage",
		},
		Tools: Tools(),
		TraitLabels: []domain.TraitLabel{
			{Label: "Organisation Type", Empty: "Not specified"},
			{Label: "Organisation Name", Empty: "Not provided"},
			{Label: "Member Count", Empty: "Not discussed"},
			{Label: "Primary Challenges", Empty: "Not discussed yet"},
			{Label: "Budget Range", Empty: "Not discussed"},
		},
	}, nil
}
