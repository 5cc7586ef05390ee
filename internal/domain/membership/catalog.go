// Package membership implements the membership-marketing consultant profile:
// service catalog, case studies, organisation insights, and booking tools.
package membership

import (
	"strings"
)

type Service struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	KeyActivities     []string `json:"key_activities"`
	TypicalResults    string   `json:"typical_results"`
	IdealFor          []string `json:"ideal_for"`
	MonthlyInvestment string   `json:"monthly_investment"`
}

type CaseStudy struct {
	Client       string            `json:"client"`
	Challenge    string            `json:"challenge"`
	Solution     string            `json:"solution"`
	Results      map[string]string `json:"results"`
	ServicesUsed []string          `json:"services_used"`
}

type OrganisationType struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	CommonChallenges []string `json:"common_challenges"`
	TypicalSize      string   `json:"typical_size"`
}

type Challenge struct {
	Name                string   `json:"name"`
	Symptoms            []string `json:"symptoms"`
	RecommendedServices []string `json:"recommended_services"`
}

var Services = []Service{
	{
		Name:        "Member Acquisition",
		Description: "Data-driven campaigns to attract and convert new members",
		KeyActivities: []string{
			"Targeted digital advertising",
			"Content marketing and SEO",
			"Referral programme development",
			"Event marketing and webinars",
			"Partnership and sponsorship activation",
		},
		TypicalResults:    "20-40% increase in new member sign-ups",
		IdealFor:          []string{"Growing organisations", "Launching new membership tiers", "Expanding into new markets"},
		MonthlyInvestment: "£2,000 - £8,000",
	},
	{
		Name:        "Member Retention",
		Description: "Reduce churn and increase lifetime value through engagement strategies",
		KeyActivities: []string{
			"Onboarding journey optimisation",
			"Engagement scoring and intervention",
			"Renewal campaign automation",
			"Win-back campaigns for lapsed members",
			"Member feedback and NPS programmes",
		},
		TypicalResults:    "15-30% reduction in churn rate",
		IdealFor:          []string{"High churn organisations", "Mature membership bases", "Subscription fatigue issues"},
		MonthlyInvestment: "£1,500 - £6,000",
	},
	{
		Name:        "Member Engagement",
		Description: "Deepen member relationships and increase participation",
		KeyActivities: []string{
			"Community building and forums",
			"Content strategy and member resources",
			"Event programming and networking",
			"Gamification and recognition programmes",
			"Member communications optimisation",
		},
		TypicalResults:    "40-60% increase in active engagement",
		IdealFor:          []string{"Low engagement organisations", "Diverse member bases", "Value perception issues"},
		MonthlyInvestment: "£1,500 - £5,000",
	},
	{
		Name:        "Membership Strategy",
		Description: "Strategic consulting to transform your membership model",
		KeyActivities: []string{
			"Membership proposition review",
			"Pricing and tier optimisation",
			"Competitive analysis",
			"Member journey mapping",
			"Technology and platform assessment",
		},
		TypicalResults:    "Clear roadmap with quick wins and long-term growth plan",
		IdealFor:          []string{"Organisations in transition", "New CEOs/membership directors", "Stagnant growth"},
		MonthlyInvestment: "£3,000 - £10,000",
	},
	{
		Name:        "Content Marketing",
		Description: "Position your organisation as the go-to voice in your sector",
		KeyActivities: []string{
			"Thought leadership content",
			"Member magazine/newsletter production",
			"Podcast and video production",
			"Social media strategy",
			"SEO and search visibility",
		},
		TypicalResults:    "3x increase in organic reach and brand authority",
		IdealFor:          []string{"Organisations needing visibility", "Competitive sectors", "Launching new initiatives"},
		MonthlyInvestment: "£2,000 - £7,000",
	},
}

var CaseStudies = []CaseStudy{
	{
		Client:    "Professional Body (Finance Sector)",
		Challenge: "Declining membership and low engagement among younger professionals",
		Solution:  "Digital-first acquisition campaign + community platform launch",
		Results: map[string]string{
			"new_members": "+47% in 12 months",
			"engagement":  "3x increase in event attendance",
			"retention":   "Churn reduced from 18% to 11%",
		},
		ServicesUsed: []string{"Member Acquisition", "Member Engagement"},
	},
	{
		Client:    "Trade Association (Construction)",
		Challenge: "Members questioning value; renewal rates dropping",
		Solution:  "Member value proposition refresh + retention automation",
		Results: map[string]string{
			"retention": "Renewal rate up from 72% to 86%",
			"nps":       "NPS improved from +12 to +41",
			"revenue":   "15% increase in membership revenue",
		},
		ServicesUsed: []string{"Member Retention", "Membership Strategy"},
	},
	{
		Client:    "Membership Charity (Healthcare)",
		Challenge: "Low awareness and struggling to compete for attention",
		Solution:  "Content marketing programme + thought leadership campaign",
		Results: map[string]string{
			"visibility": "Featured in 12 national publications",
			"traffic":    "Website traffic up 340%",
			"leads":      "Qualified leads up 89%",
		},
		ServicesUsed: []string{"Content Marketing", "Member Acquisition"},
	},
	{
		Client:    "Professional Institute (Technology)",
		Challenge: "Members not engaging with resources; low CPD completion",
		Solution:  "Gamification programme + personalised learning paths",
		Results: map[string]string{
			"engagement":   "Resource usage up 156%",
			"completion":   "CPD completion rate doubled",
			"satisfaction": "Member satisfaction up 28 points",
		},
		ServicesUsed: []string{"Member Engagement", "Content Marketing"},
	},
}

var organisationTypeKeys = []string{
	"professional_body", "trade_association", "membership_charity", "learned_society", "member_association",
}

var OrganisationTypes = map[string]OrganisationType{
	"professional_body": {
		Name:             "Professional Body",
		Description:      "Organisations representing professionals in a specific field (accountants, engineers, lawyers, etc.)",
		CommonChallenges: []string{"Younger member recruitment", "Demonstrating CPD value", "Competing with free online content"},
		TypicalSize:      "1,000 - 100,000+ members",
	},
	"trade_association": {
		Name:             "Trade Association",
		Description:      "Organisations representing businesses in a specific industry",
		CommonChallenges: []string{"Member ROI justification", "Engaging SME members", "Policy influence visibility"},
		TypicalSize:      "200 - 10,000 members",
	},
	"membership_charity": {
		Name:             "Membership Charity",
		Description:      "Charitable organisations with a supporter/member base",
		CommonChallenges: []string{"Donor fatigue", "Demonstrating impact", "Converting supporters to regular givers"},
		TypicalSize:      "5,000 - 500,000+ supporters",
	},
	"learned_society": {
		Name:             "Learned Society",
		Description:      "Academic and research-focused membership organisations",
		CommonChallenges: []string{"International member engagement", "Journal/publication competition", "Early career recruitment"},
		TypicalSize:      "500 - 50,000 members",
	},
	"member_association": {
		Name:             "Member Association",
		Description:      "General membership organisations (clubs, societies, interest groups)",
		CommonChallenges: []string{"Volunteer engagement", "Modernising operations", "Competing for attention"},
		TypicalSize:      "100 - 50,000 members",
	},
}

var Challenges = map[string]Challenge{
	"acquisition": {
		Name:                "Member Acquisition",
		Symptoms:            []string{"Declining new member numbers", "High cost per acquisition", "Low awareness in target market"},
		RecommendedServices: []string{"Member Acquisition", "Content Marketing"},
	},
	"retention": {
		Name:                "Member Retention",
		Symptoms:            []string{"High churn rate", "Low renewal rates", "Members questioning value"},
		RecommendedServices: []string{"Member Retention", "Member Engagement"},
	},
	"engagement": {
		Name:                "Member Engagement",
		Symptoms:            []string{"Low event attendance", "Poor resource usage", "Silent majority of members"},
		RecommendedServices: []string{"Member Engagement", "Content Marketing"},
	},
	"strategy": {
		Name:                "Strategic Direction",
		Symptoms:            []string{"Unclear value proposition", "Outdated membership model", "Competitive pressure"},
		RecommendedServices: []string{"Membership Strategy", "Member Acquisition"},
	},
}

// normalizeKey lowercases and folds separators so "Trade Association" and
// "trade-association" both hit the "trade_association" entry.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// aliasRule maps a substring of the normalized input to a canonical key.
// Rules are evaluated in order; the first match wins.
type aliasRule struct {
	substr string
	key    string
}

var organisationAliases = []aliasRule{
	{"professional", "professional_body"},
	{"institute", "professional_body"},
	{"trade", "trade_association"},
	{"charit", "membership_charity"},
	{"learned", "learned_society"},
	{"society", "learned_society"},
	{"club", "member_association"},
	{"association", "member_association"},
}

var challengeAliases = []aliasRule{
	{"acqui", "acquisition"},
	{"grow", "acquisition"},
	{"reten", "retention"},
	{"churn", "retention"},
	{"renew", "retention"},
	{"engag", "engagement"},
	{"strat", "strategy"},
	{"direction", "strategy"},
}

func foldAlias(key string, rules []aliasRule) string {
	for _, r := range rules {
		if strings.Contains(key, r.substr) {
			return r.key
		}
	}
	return key
}

// LookupService finds a service by case-insensitive substring of its name.
func LookupService(name string) (Service, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Service{}, false
	}
	for _, s := range Services {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceNames returns the catalog's service names in order.
func ServiceNames() []string {
	names := make([]string, 0, len(Services))
	for _, s := range Services {
		names = append(names, s.Name)
	}
	return names
}

// LookupOrganisationType resolves an organisation type by key, folding loose
// inputs ("Professional bodies", "trade") onto canonical keys first.
func LookupOrganisationType(key string) (OrganisationType, bool) {
	k := normalizeKey(key)
	if org, ok := OrganisationTypes[k]; ok {
		return org, true
	}
	k = foldAlias(k, organisationAliases)
	org, ok := OrganisationTypes[k]
	return org, ok
}

// OrganisationTypeKeys returns the canonical organisation type keys in a
// stable order.
func OrganisationTypeKeys() []string {
	keys := make([]string, len(organisationTypeKeys))
	copy(keys, organisationTypeKeys)
	return keys
}

// LookupChallenge resolves a challenge by key with alias folding.
func LookupChallenge(key string) (Challenge, bool) {
	k := normalizeKey(key)
	if c, ok := Challenges[k]; ok {
		return c, true
	}
	k = foldAlias(k, challengeAliases)
	c, ok := Challenges[k]
	return c, ok
}
