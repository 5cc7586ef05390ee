package yoga

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
	ToolGetCoverageInfo      = "get_coverage_info"
	ToolCompareProviders     = "compare_providers"
	ToolGetStyleRequirements = "get_style_requirements"
	ToolRecommendCover       = "recommend_cover"
	ToolBookCallback         = "book_callback"
	ToolGetMyProfile         = "get_my_profile"
)

const callbackLink = "https://calendly.com/yoga-teacher-insurance/quote-callback"

// ===================================
// get_coverage_info
// ===================================

type GetCoverageInfoInput struct {
	CoverageType string `json:"coverage_type"`
}

type GetCoverageInfoOutput struct {
	Coverage      string   `json:"coverage,omitempty"`
	Description   string   `json:"description,omitempty"`
	TypicalLimits []string `json:"typical_limits,omitempty"`
	Covers        []string `json:"covers,omitempty"`
	MonthlyFrom   string   `json:"monthly_from,omitempty"`

	Error          string   `json:"error,omitempty"`
	AvailableTypes []string `json:"available_types,omitempty"`
	Suggestion     string   `json:"suggestion,omitempty"`
}

func getCoverageInfo(ctx context.Context, in *GetCoverageInfoInput) (*GetCoverageInfoOutput, error) {
	if c, ok := LookupCoverage(in.CoverageType); ok {
		return &GetCoverageInfoOutput{
			Coverage:      c.Name,
			Description:   c.Description,
			TypicalLimits: c.TypicalLimits,
			Covers:        c.Covers,
			MonthlyFrom:   c.MonthlyFrom,
		}, nil
	}

	return &GetCoverageInfoOutput{
		Error:          "Coverage type not found: " + in.CoverageType,
		AvailableTypes: CoverageKeys(),
		Suggestion:     "Try: public_liability, professional_indemnity, equipment, personal_accident, or studio",
	}, nil
}

// ===================================
// compare_providers
// ===================================

type CompareProvidersInput struct {
	Style string `json:"style,omitempty"`
}

type CompareProvidersOutput struct {
	Title     string     `json:"title"`
	Providers []Provider `json:"providers"`
	Note      string     `json:"note"`

	Error           string   `json:"error,omitempty"`
	AvailableStyles []string `json:"available_styles,omitempty"`
	Suggestion      string   `json:"suggestion,omitempty"`
}

func compareProviders(ctx context.Context, in *CompareProvidersInput) (*CompareProvidersOutput, error) {
	if in.Style == "" {
		return &CompareProvidersOutput{
			Title:     "Provider Comparison",
			Providers: Providers,
			Note:      "Premiums shown are typical ranges. Get a callback for an exact quote.",
		}, nil
	}

	providers := ProvidersForStyle(in.Style)
	if providers == nil {
		return &CompareProvidersOutput{
			Error:           "Style not recognised: " + in.Style,
			AvailableStyles: StyleKeys(),
			Suggestion:      "Try: hatha, vinyasa, hot_yoga, aerial, pregnancy, yin, or pilates",
		}, nil
	}

	return &CompareProvidersOutput{
		Title:     "Providers covering " + in.Style,
		Providers: providers,
		Note:      "Premiums shown are typical ranges. Get a callback for an exact quote.",
	}, nil
}

// ===================================
// get_style_requirements
// ===================================

type GetStyleRequirementsInput struct {
	Style string `json:"style"`
}

type GetStyleRequirementsOutput struct {
	Style          string   `json:"style,omitempty"`
	Description    string   `json:"description,omitempty"`
	RiskProfile    string   `json:"risk_profile,omitempty"`
	RequiredCover  []string `json:"required_cover,omitempty"`
	Considerations []string `json:"considerations,omitempty"`
	TypicalMonthly string   `json:"typical_monthly,omitempty"`

	Error           string   `json:"error,omitempty"`
	AvailableStyles []string `json:"available_styles,omitempty"`
	Suggestion      string   `json:"suggestion,omitempty"`
}

func getStyleRequirements(ctx context.Context, in *GetStyleRequirementsInput) (*GetStyleRequirementsOutput, error) {
	if s, ok := LookupStyle(in.Style); ok {
		return &GetStyleRequirementsOutput{
			Style:          s.Name,
			Description:    s.Description,
			RiskProfile:    s.RiskProfile,
			RequiredCover:  s.RequiredCover,
			Considerations: s.Considerations,
			TypicalMonthly: s.TypicalMonthly,
		}, nil
	}

	return &GetStyleRequirementsOutput{
		Error:           "Style not found: " + in.Style,
		AvailableStyles: StyleKeys(),
		Suggestion:      "Try: hatha, vinyasa, hot_yoga, aerial, pregnancy, yin, or pilates",
	}, nil
}

// ===================================
// recommend_cover
// ===================================

type RecommendCoverInput struct {
	Styles       []string `json:"styles,omitempty"`
	OwnStudio    bool     `json:"own_studio,omitempty"`
	TeachesOnline bool    `json:"teaches_online,omitempty"`
}

type RecommendCoverOutput struct {
	RecommendedCover []CoverageOption `json:"recommended_cover"`
	Providers        []Provider       `json:"suggested_providers"`
	Rationale        []string         `json:"rationale"`
	NextStep         string           `json:"next_step"`
}

func recommendCover(ctx context.Context, in *RecommendCoverInput) (*RecommendCoverOutput, error) {
	coverKeys := []string{"public_liability", "professional_indemnity"}
	rationale := []string{
		"Public liability and professional indemnity are the baseline every teacher needs.",
	}

	highestRisk := "low"
	for _, raw := range in.Styles {
		s, ok := LookupStyle(raw)
		if !ok {
			continue
		}
		switch s.Name {
		case "Aerial Yoga":
			highestRisk = "high"
			coverKeys = append(coverKeys, "equipment")
			rationale = append(rationale, "Aerial work needs equipment cover for rigs and a policy that names aerial explicitly.")
		case "Hot Yoga":
			if highestRisk == "low" {
				highestRisk = "moderate"
			}
			rationale = append(rationale, "Hot yoga must be explicitly named on the policy; £5m public liability is recommended.")
		case "Pilates":
			rationale = append(rationale, "Declare reformer machines if you use them.")
		}
	}

	if in.OwnStudio {
		coverKeys = append(coverKeys, "studio")
		rationale = append(rationale, "Running your own space adds premises and employers' liability exposure.")
	}
	if in.TeachesOnline {
		rationale = append(rationale, "Check the policy covers online classes and students outside the UK.")
	}

	seen := map[string]bool{}
	var cover []CoverageOption
	for _, k := range coverKeys {
		if seen[k] {
			continue
		}
		seen[k] = true
		cover = append(cover, CoverageOptions[k])
	}

	var providers []Provider
	if len(in.Styles) > 0 {
		providers = ProvidersForStyle(in.Styles[0])
	}
	if providers == nil {
		providers = Providers
	}

	return &RecommendCoverOutput{
		RecommendedCover: cover,
		Providers:        providers,
		Rationale:        rationale,
		NextStep:         "Book a quote callback and we'll match you to the right provider.",
	}, nil
}

// ===================================
// book_callback
// ===================================

type BookCallbackInput struct {
	PreferredTime string `json:"preferred_time,omitempty"`
	SpecificTopic string `json:"specific_topic,omitempty"`
}

type BookCallbackOutput struct {
	Action          string            `json:"action"`
	Message         string            `json:"message"`
	ProfileCaptured map[string]string `json:"profile_captured"`
	PreferredTime   string            `json:"preferred_time,omitempty"`
	Topic           string            `json:"topic,omitempty"`
	NextSteps       []string          `json:"next_steps"`
	CalendarLink    string            `json:"calendar_link"`
}

func bookCallback(ctx context.Context, in *BookCallbackInput) (*BookCallbackOutput, error) {
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

	return &BookCallbackOutput{
		Action:          "book_callback",
		Message:         "Great! Let's get you an exact quote over a quick call.",
		ProfileCaptured: profile,
		PreferredTime:   in.PreferredTime,
		Topic:           in.SpecificTopic,
		NextSteps: []string{
			"Pick a slot and we'll call you back",
			"Have your qualification certificates handy",
			"We'll compare quotes from the providers that fit your styles",
			"No obligation - the comparison is free",
		},
		CalendarLink: callbackLink,
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
	Profile   map[string]string `json:"teaching_profile,omitempty"`
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
			Message:  "You're browsing as a guest. You can still get a quote - just let me know when you're ready for a callback.",
			Action:   "Sign in to save your details, or continue as guest.",
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
		Message:   "Hi " + firstName + "! Here's what I know about you and your teaching.",
	}, nil
}

// Tools builds the yoga insurance advisor tool set.
func Tools() []tool.BaseTool {
	return []tool.BaseTool{
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolGetCoverageInfo,
				Desc: "Get detailed information about a cover type: what it protects against, typical limits, and prices. Use whenever the user asks what a cover type means.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"coverage_type": {
						Type:     "string",
						Desc:     "Cover type to look up: public_liability, professional_indemnity, equipment, personal_accident, or studio",
						Required: true,
					},
				}),
			},
			getCoverageInfo,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolCompareProviders,
				Desc: "Compare insurance providers, optionally filtered to those covering a specific yoga style.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"style": {
						Type: "string",
						Desc: "Optional teaching style filter, e.g. hot_yoga or aerial",
					},
				}),
			},
			compareProviders,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolGetStyleRequirements,
				Desc: "Get insurance requirements for a specific yoga style: risk profile, required cover, and typical price.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"style": {
						Type:     "string",
						Desc:     "Teaching style, e.g. hot yoga, aerial, pregnancy, vinyasa",
						Required: true,
					},
				}),
			},
			getStyleRequirements,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolRecommendCover,
				Desc: "Recommend a cover package based on the styles the user teaches and how they work. Use after you understand their teaching.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"styles": {
						Type:     "array",
						Desc:     "Styles the user teaches",
						ElemInfo: &schema.ParameterInfo{Type: "string"},
					},
					"own_studio": {
						Type: "boolean",
						Desc: "Whether the user runs their own studio",
					},
					"teaches_online": {
						Type: "boolean",
						Desc: "Whether the user teaches online classes",
					},
				}),
			},
			recommendCover,
		),
		utils.NewTool(
			&schema.ToolInfo{
				Name: ToolBookCallback,
				Desc: "Book a free quote callback. Captures what we know about the user and returns the booking link.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"preferred_time": {
						Type: "string",
						Desc: "When they'd like the call (morning, afternoon, specific day)",
					},
					"specific_topic": {
						Type: "string",
						Desc: "What they'd like to discuss",
					},
				}),
			},
			bookCallback,
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
