package membership

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/advisor-agents/server/internal/agent/identity"
	"github.com/advisor-agents/server/internal/agent/model"
)

// Tool names as exposed to the model.
const (
	ToolRecommendServices       = "recommend_services"
	ToolAssessChallenges        = "assess_challenges"
	ToolGetCaseStudies          = "get_case_studies"
	ToolGetServiceInfo          = "get_service_info"
	ToolGetOrganisationInsights = "get_organisation_insights"
	ToolBookConsultation        = "book_consultation"
	ToolGetMyProfile            = "get_my_profile"
)

const calendarLink = "https://calendly.com/membership-marketing-agency/consultation"

// ===================================
// recommend_services
// ===================================

type RecommendServicesInput struct {
	Challenge string `json:"challenge,omitempty"`
}

type RecommendServicesOutput struct {
	Title    string    `json:"title"`
	Services []Service `json:"services"`
	NextStep string    `json:"next_step"`
}

func recommendServices(ctx context.Context, in *RecommendServicesInput) (*RecommendServicesOutput, error) {
	services := Services
	title := "Recommended Services"

	if in.Challenge != "" {
		if c, ok := LookupChallenge(in.Challenge); ok {
			filtered := make([]Service, 0, len(services))
			for _, s := range services {
				for _, name := range c.RecommendedServices {
					if s.Name == name {
						filtered = append(filtered, s)
						break
					}
				}
			}
			services = filtered
			title = "Recommended Services for " + in.Challenge
		}
	}

	return &RecommendServicesOutput{
		Title:    title,
		Services: services,
		NextStep: "Book a free consultation to discuss which services would work best for your organisation.",
	}, nil
}

// ===================================
// assess_challenges
// ===================================

type AssessChallengesInput struct {
	Symptoms []string `json:"symptoms,omitempty"`
}

type IdentifiedChallenge struct {
	Name                string   `json:"name"`
	RecommendedServices []string `json:"recommended_services"`
}

type AssessChallengesOutput struct {
	Message              string                `json:"message,omitempty"`
	CommonSymptoms       []string              `json:"common_symptoms,omitempty"`
	SymptomsAnalysed     []string              `json:"symptoms_analysed,omitempty"`
	IdentifiedChallenges []IdentifiedChallenge `json:"identified_challenges,omitempty"`
	Recommendation       string                `json:"recommendation,omitempty"`
}

func assessChallenges(ctx context.Context, in *AssessChallengesInput) (*AssessChallengesOutput, error) {
	if len(in.Symptoms) == 0 {
		return &AssessChallengesOutput{
			Message: "Tell me what challenges you're facing and I'll help identify the root cause.",
			CommonSymptoms: []string{
				"Declining new member numbers",
				"High churn/low renewal rates",
				"Members not engaging with resources",
				"Unclear value proposition",
				"Competition from free alternatives",
			},
		}, nil
	}

	var identified []IdentifiedChallenge
	seen := map[string]bool{}
	for _, key := range []string{"acquisition", "retention", "engagement", "strategy"} {
		c := Challenges[key]
		for _, symptom := range in.Symptoms {
			matched := false
			for _, known := range c.Symptoms {
				if strings.Contains(strings.ToLower(symptom), strings.ToLower(known)) ||
					strings.Contains(strings.ToLower(known), strings.ToLower(symptom)) {
					matched = true
					break
				}
			}
			if matched && !seen[c.Name] {
				seen[c.Name] = true
				identified = append(identified, IdentifiedChallenge{
					Name:                c.Name,
					RecommendedServices: c.RecommendedServices,
				})
			}
		}
	}

	if len(identified) == 0 {
		identified = []IdentifiedChallenge{{
			Name:                "Strategy Review",
			RecommendedServices: []string{"Membership Strategy"},
		}}
	}

	return &AssessChallengesOutput{
		SymptomsAnalysed:     in.Symptoms,
		IdentifiedChallenges: identified,
		Recommendation:       "Based on these symptoms, I'd recommend a discovery call to dive deeper into your specific situation.",
	}, nil
}

// ===================================
// get_case_studies
// ===================================

type GetCaseStudiesInput struct {
	OrganisationType string `json:"organisation_type,omitempty"`
	Service          string `json:"service,omitempty"`
}

type GetCaseStudiesOutput struct {
	Title       string      `json:"title"`
	CaseStudies []CaseStudy `json:"case_studies"`
	Note        string      `json:"note"`
}

func getCaseStudies(ctx context.Context, in *GetCaseStudiesInput) (*GetCaseStudiesOutput, error) {
	cases := CaseStudies

	if in.Service != "" {
		needle := strings.ToLower(in.Service)
		filtered := make([]CaseStudy, 0, len(cases))
		for _, c := range cases {
			for _, s := range c.ServicesUsed {
				if strings.Contains(strings.ToLower(s), needle) {
					filtered = append(filtered, c)
					break
				}
			}
		}
		cases = filtered
	}

	return &GetCaseStudiesOutput{
		Title:       "Success Stories",
		CaseStudies: cases,
		Note:        "These are representative results. Actual results depend on your specific situation.",
	}, nil
}

// ===================================
// get_service_info
// ===================================

type GetServiceInfoInput struct {
	ServiceName string `json:"service_name"`
}

type GetServiceInfoOutput struct {
	Service        string   `json:"service,omitempty"`
	Description    string   `json:"description,omitempty"`
	KeyActivities  []string `json:"key_activities,omitempty"`
	TypicalResults string   `json:"typical_results,omitempty"`
	IdealFor       []string `json:"ideal_for,omitempty"`
	Investment     string   `json:"investment,omitempty"`

	Error             string   `json:"error,omitempty"`
	AvailableServices []string `json:"available_services,omitempty"`
	Suggestion        string   `json:"suggestion,omitempty"`
}

func getServiceInfo(ctx context.Context, in *GetServiceInfoInput) (*GetServiceInfoOutput, error) {
	if s, ok := LookupService(in.ServiceName); ok {
		return &GetServiceInfoOutput{
			Service:        s.Name,
			Description:    s.Description,
			KeyActivities:  s.KeyActivities,
			TypicalResults: s.TypicalResults,
			IdealFor:       s.IdealFor,
			Investment:     s.MonthlyInvestment,
		}, nil
	}

	return &GetServiceInfoOutput{
		Error:             "Service not found: " + in.ServiceName,
		AvailableServices: ServiceNames(),
		Suggestion:        "Try: Member Acquisition, Member Retention, Member Engagement, Membership Strategy, or Content Marketing",
	}, nil
}

// ===================================
// get_organisation_insights
// ===================================

type GetOrganisationInsightsInput struct {
	OrganisationType string `json:"organisation_type"`
}

type GetOrganisationInsightsOutput struct {
	OrganisationType string   `json:"organisation_type,omitempty"`
	Description      string   `json:"description,omitempty"`
	CommonChallenges []string `json:"common_challenges,omitempty"`
	TypicalSize      string   `json:"typical_size,omitempty"`
	Note             string   `json:"note,omitempty"`

	Error          string   `json:"error,omitempty"`
	AvailableTypes []string `json:"available_types,omitempty"`
	Suggestion     string   `json:"suggestion,omitempty"`
}

func getOrganisationInsights(ctx context.Context, in *GetOrganisationInsightsInput) (*GetOrganisationInsightsOutput, error) {
	if org, ok := LookupOrganisationType(in.OrganisationType); ok {
		return &GetOrganisationInsightsOutput{
			OrganisationType: org.Name,
			Description:      org.Description,
			CommonChallenges: org.CommonChallenges,
			TypicalSize:      org.TypicalSize,
			Note:             "We have deep experience working with organisations like yours.",
		}, nil
	}

	return &GetOrganisationInsightsOutput{
		Error:          "Organisation type not found: " + in.OrganisationType,
		AvailableTypes: OrganisationTypeKeys(),
		Suggestion:     "Try: professional_body, trade_association, membership_charity, learned_society, or member_association",
	}, nil
}

// ===================================
// book_consultation
// ===================================

type BookConsultationInput struct {
	PreferredTime string `json:"preferred_time,omitempty"`
	SpecificTopic string `json:"specific_topic,omitempty"`
}

type BookConsultationOutput struct {
	Action          string            `json:"action"`
	Message         string            `json:"message"`
	ProfileCaptured map[string]string `json:"profile_captured"`
	PreferredTime   string            `json:"preferred_time,omitempty"`
	Topic           string            `json:"topic,omitempty"`
	NextSteps       []string          `json:"next_steps"`
	CalendarLink    string            `json:"calendar_link"`
}

func bookConsultation(ctx context.Context, in *BookConsultationInput) (*BookConsultationOutput, error) {
	session := model.SessionFromContext(ctx)
	cached := identity.CachedFromContext(ctx)

	profile := map[string]string{}
	if session != nil && session.User != nil {
		profile["name"] = session.User.Name
		profile["email"] = session.User.Email
	} else {
		profile["name"] = cached.Name
		profile["email"] = cached.Email
	}
	if session != nil {
		for _, t := range session.Traits {
			profile[strings.ToLower(strings.ReplaceAll(t.Label, " ", "_"))] = t.Value
		}
	}

	return &BookConsultationOutput{
		Action:          "book_consultation",
		Message:         "Great! I'd love to set up a free 30-minute consultation call.",
		ProfileCaptured: profile,
		PreferredTime:   in.PreferredTime,
		Topic:           in.SpecificTopic,
		NextSteps: []string{
			"We'll send a calendar invite to your email",
			"Come prepared to discuss your current challenges",
			"We'll share some initial ideas on the call",
			"No obligation - it's a chance to see if we're a good fit",
		},
		CalendarLink: calendarLink,
	}, nil
}

// ===================================
// get_my_profile
// ===================================

type GetMyProfileInput struct{}

type GetMyProfileOutput struct {
	LoggedIn  bool              `json:"logged_in"`
	UserID    string            `json:"user_id,omitempty"`
	Name      string            `json:"name,omitempty"`
	FirstName string            `json:"first_name,omitempty"`
	Email     string            `json:"email,omitempty"`
	Profile   map[string]string `json:"organisation_profile,omitempty"`
	Message   string            `json:"message"`
	Action    string            `json:"action,omitempty"`
}

func getMyProfile(ctx context.Context, in *GetMyProfileInput) (*GetMyProfileOutput, error) {
	session := model.SessionFromContext(ctx)
	cached := identity.CachedFromContext(ctx)

	var user *model.UserProfile
	if session != nil {
		user = session.User
	}

	userID := cached.UserID
	if user != nil && user.ID != "" {
		userID = user.ID
	}
	name := identity.ResolveName(user, cached)
	firstName := ""
	if user != nil && user.FirstName != "" {
		firstName = user.FirstName
	} else if name != "" {
		firstName = identity.FirstName(name)
	}
	email := cached.Email
	if user != nil && user.Email != "" {
		email = user.Email
	}

	if userID == "" && name == "" {
		return &GetMyProfileOutput{
			LoggedIn: false,
			Message:  "You're browsing as a guest. You can still book a consultation - just let me know when you're ready.",
			Action:   "Sign in to save your preferences, or continue as guest.",
		}, nil
	}

	profile := map[string]string{}
	if session != nil {
		for _, t := range session.Traits {
			profile[strings.ToLower(strings.ReplaceAll(t.Label, " ", "_"))] = t.Value
		}
	}

	return &GetMyProfileOutput{
		LoggedIn:  true,
		UserID:    userID,
		Name:      name,
		FirstName: firstName,
		Email:     email,
		Profile:   profile,
		Message:   "Hi " + firstName + "! Here's what I know about you and your organisation.",
	}, nil
}

// Tools builds the membership consultant tool set.
func Tools() []tool.BaseTool {
	return []tool.BaseTool{
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolRecommendServices,
				Desc: "Recommend membership marketing services based on the user's challenges. Use whenever the user asks what we offer or what would help them.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"challenge": {
						Type: "string",
						Desc: "Optional filter for a specific challenge: acquisition, retention, engagement, or strategy",
					},
				}),
			},
			recommendServices,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolAssessChallenges,
				Desc: "Assess membership challenges based on symptoms described by the user and map them to recommended services.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"symptoms": {
						Type:     "array",
						Desc:     "List of symptoms or issues the organisation is experiencing",
						ElemInfo: &schema.ParameterInfo{Type: "string"},
					},
				}),
			},
			assessChallenges,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolGetCaseStudies,
				Desc: "Get relevant case studies and success stories, optionally filtered by organisation type or service used.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"organisation_type": {
						Type: "string",
						Desc: "Filter by organisation type (professional_body, trade_association, etc.)",
					},
					"service": {
						Type: "string",
						Desc: "Filter by service used",
					},
				}),
			},
			getCaseStudies,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolGetServiceInfo,
				Desc: "Get detailed information about a specific service: activities, typical results, and investment range.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"service_name": {
						Type:     "string",
						Desc:     "The name of the service to look up, e.g. Member Retention",
						Required: true,
					},
				}),
			},
			getServiceInfo,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolGetOrganisationInsights,
				Desc: "Get insights specific to an organisation type: common challenges and typical size.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"organisation_type": {
						Type:     "string",
						Desc:     "Type of organisation (professional_body, trade_association, etc.)",
						Required: true,
					},
				}),
			},
			getOrganisationInsights,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolBookConsultation,
				Desc: "Help the user book a free consultation call. Captures what we know about them and returns the calendar link.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"preferred_time": {
						Type: "string",
						Desc: "When they'd like to speak (morning, afternoon, specific day)",
					},
					"specific_topic": {
						Type: "string",
						Desc: "What they'd like to discuss",
					},
				}),
			},
			bookConsultation,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name:        ToolGetMyProfile,
				Desc:        "Get the current user's profile information. Use when the user asks about their profile, name, or account.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
			},
			getMyProfile,
		),
	}
}
