package yoga

import "strings"

// CoverageOption describes one cover type in a yoga teacher policy.
type CoverageOption struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	TypicalLimits []string `json:"typical_limits"`
	Covers        []string `json:"covers"`
	MonthlyFrom   string   `json:"monthly_from"`
}

// Provider is one insurer whose yoga teacher policies we compare.
type Provider struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Strengths     []string `json:"strengths"`
	MonthlyRange  string   `json:"monthly_range"`
	BestFor       string   `json:"best_for"`
	StylesCovered []string `json:"styles_covered"`
}

// Style is one teaching discipline with its insurance requirements.
type Style struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	RiskProfile      string   `json:"risk_profile"`
	RequiredCover    []string `json:"required_cover"`
	Considerations   []string `json:"considerations"`
	TypicalMonthly   string   `json:"typical_monthly"`
}

// CoverageOptions keyed by normalized cover type.
var CoverageOptions = map[string]CoverageOption{
	"public_liability": {
		Name:        "Public Liability",
		Description: "Covers claims from students or third parties injured during your classes, or damage you cause to a venue.",
		TypicalLimits: []string{
			"£1 million (minimum most venues accept)",
			"£5 million (standard for most policies)",
			"£10 million (required by some studios and councils)",
		},
		Covers: []string{
			"Student slips or falls during class",
			"Damage to rented studio space",
			"Injuries from equipment you provide",
		},
		MonthlyFrom: "£5/month as part of a combined policy",
	},
	"professional_indemnity": {
		Name:        "Professional Indemnity",
		Description: "Covers claims that your teaching, advice, or adjustments caused injury or loss.",
		TypicalLimits: []string{
			"£1 million",
			"£5 million (recommended if you teach therapeutic or pregnancy yoga)",
		},
		Covers: []string{
			"Injury attributed to an adjustment or assist",
			"Claims of negligent sequencing or advice",
			"Legal defence costs",
		},
		MonthlyFrom: "£6/month as part of a combined policy",
	},
	"equipment": {
		Name:        "Equipment Cover",
		Description: "Covers your mats, blocks, straps, sound systems, and aerial rigs against theft and accidental damage.",
		TypicalLimits: []string{
			"£1,000-£5,000 depending on the policy",
		},
		Covers: []string{
			"Theft from your car or a venue",
			"Accidental damage in transit",
			"Aerial hammocks and rigging (specialist add-on)",
		},
		MonthlyFrom: "£2/month add-on",
	},
	"personal_accident": {
		Name:        "Personal Accident",
		Description: "Pays you a benefit if you are injured and cannot teach.",
		TypicalLimits: []string{
			"Weekly benefit of £100-£500 while unable to work",
			"Lump sums for permanent injury",
		},
		Covers: []string{
			"Loss of income after an injury",
			"Physiotherapy and treatment costs on some policies",
		},
		MonthlyFrom: "£4/month add-on",
	},
	"studio": {
		Name:        "Studio & Business Cover",
		Description: "For teachers who run their own space: buildings, contents, employers' liability if you hire other teachers.",
		TypicalLimits: []string{
			"Employers' liability £10 million (legal requirement with staff)",
			"Contents sum insured to match your fit-out",
		},
		Covers: []string{
			"Your premises and fit-out",
			"Employers' liability for hired instructors",
			"Business interruption",
		},
		MonthlyFrom: "£25/month depending on premises",
	},
}

var coverageKeys = []string{
	"public_liability",
	"professional_indemnity",
	"equipment",
	"personal_accident",
	"studio",
}

// Providers in comparison order.
var Providers = []Provider{
	{
		Name:         "YogiCover",
		Description:  "Specialist yoga-only insurer. Policies written around teaching practice rather than generic sports cover.",
		Strengths:    []string{"Covers all mainstream styles as standard", "Student teachers covered during training", "No excess on liability claims"},
		MonthlyRange: "£15-£22/month",
		BestFor:      "Newly qualified teachers and 200-hour trainees",
		StylesCovered: []string{"Hatha", "Vinyasa", "Yin", "Restorative", "Pregnancy"},
	},
	{
		Name:         "StudioShield",
		Description:  "Broad fitness-professional insurer with strong studio and employers' liability options.",
		Strengths:    []string{"Combined teacher and studio policies", "£10m public liability available", "Covers hiring other instructors"},
		MonthlyRange: "£20-£38/month",
		BestFor:      "Teachers running their own studio or hiring cover teachers",
		StylesCovered: []string{"Hatha", "Vinyasa", "Hot Yoga", "Pilates", "Group Fitness"},
	},
	{
		Name:         "AerialSure",
		Description:  "The only comparison option that insures aerial and acro disciplines without an extra underwriting referral.",
		Strengths:    []string{"Aerial hammock and rig cover included", "Equipment cover up to £5,000", "Acro and partner work covered"},
		MonthlyRange: "£24-£35/month",
		BestFor:      "Aerial, acro, and circus-adjacent teachers",
		StylesCovered: []string{"Aerial Yoga", "Acro Yoga", "Vinyasa", "Hatha"},
	},
	{
		Name:         "FlexiProtect",
		Description:  "Budget-friendly cover for part-time teachers, priced per class volume.",
		Strengths:    []string{"Cheapest entry point at £15/month", "Monthly rolling contract", "Online classes covered worldwide"},
		MonthlyRange: "£15-£18/month",
		BestFor:      "Part-time and online-only teachers",
		StylesCovered: []string{"Hatha", "Vinyasa", "Yin", "Online classes"},
	},
}

// Styles keyed by normalized style name.
var Styles = map[string]Style{
	"hatha": {
		Name:           "Hatha Yoga",
		Description:    "Slower-paced postural yoga. The baseline style every insurer covers as standard.",
		RiskProfile:    "Low",
		RequiredCover:  []string{"Public liability £1m+", "Professional indemnity £1m+"},
		Considerations: []string{"Standard rates apply", "Covered by every provider we compare"},
		TypicalMonthly: "£15-£20/month",
	},
	"vinyasa": {
		Name:           "Vinyasa Flow",
		Description:    "Dynamic flowing sequences. Covered as standard by mainstream policies.",
		RiskProfile:    "Low to moderate",
		RequiredCover:  []string{"Public liability £1m+", "Professional indemnity £1m+"},
		Considerations: []string{"Hands-on adjustments raise indemnity importance", "Standard rates apply"},
		TypicalMonthly: "£15-£22/month",
	},
	"hot_yoga": {
		Name:           "Hot Yoga",
		Description:    "Heated-room practice (Bikram and similar). Heat raises the injury and venue-damage risk profile.",
		RiskProfile:    "Moderate",
		RequiredCover:  []string{"Public liability £5m recommended", "Professional indemnity £1m+", "Check the policy names heated environments"},
		Considerations: []string{"Not all policies cover heated rooms - it must be explicit", "Dehydration and heat-related claims are the main exposure", "Studios may require £5m-£10m public liability"},
		TypicalMonthly: "£20-£28/month",
	},
	"aerial": {
		Name:           "Aerial Yoga",
		Description:    "Hammock and silk-based practice. Treated as a specialist discipline by most insurers.",
		RiskProfile:    "High",
		RequiredCover:  []string{"Public liability £5m", "Professional indemnity £5m recommended", "Equipment cover for rigs and hammocks", "Rigging inspection records"},
		Considerations: []string{"Many mainstream policies exclude aerial work entirely", "Insurers expect rig inspection and load certification", "Falls from height drive premiums up"},
		TypicalMonthly: "£24-£35/month",
	},
	"pregnancy": {
		Name:           "Pregnancy Yoga",
		Description:    "Pre- and post-natal classes. Higher indemnity exposure due to the client group.",
		RiskProfile:    "Moderate",
		RequiredCover:  []string{"Professional indemnity £5m recommended", "Public liability £1m+", "Specific pre/post-natal training certificate"},
		Considerations: []string{"Insurers usually require a recognised pregnancy yoga qualification", "Indemnity matters more than liability here"},
		TypicalMonthly: "£18-£25/month",
	},
	"yin": {
		Name:           "Yin & Restorative",
		Description:    "Passive, long-hold practice. The lowest risk profile of any style.",
		RiskProfile:    "Low",
		RequiredCover:  []string{"Public liability £1m+", "Professional indemnity £1m+"},
		Considerations: []string{"Covered as standard everywhere", "Props are worth adding to equipment cover"},
		TypicalMonthly: "£15-£18/month",
	},
	"pilates": {
		Name:           "Pilates",
		Description:    "Mat and reformer pilates. Reformer work needs explicit equipment-based cover.",
		RiskProfile:    "Low to moderate",
		RequiredCover:  []string{"Public liability £1m+", "Professional indemnity £1m+", "Reformer work named on the policy"},
		Considerations: []string{"Mat pilates is standard; reformer machines must be declared", "Equipment cover recommended for studio machines"},
		TypicalMonthly: "£16-£24/month",
	},
}

var styleKeys = []string{
	"hatha",
	"vinyasa",
	"hot_yoga",
	"aerial",
	"pregnancy",
	"yin",
	"pilates",
}

// normalizeKey lowercases and folds separators so "Hot Yoga", "hot-yoga", and
// "hot_yoga" hit the same entry.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

type aliasRule struct {
	substr string
	key    string
}

// Ordered, first match wins.
var coverageAliases = []aliasRule{
	{"employer", "studio"},
	{"public", "public_liability"},
	{"liability", "public_liability"},
	{"indemnity", "professional_indemnity"},
	{"professional", "professional_indemnity"},
	{"negligence", "professional_indemnity"},
	{"equipment", "equipment"},
	{"kit", "equipment"},
	{"accident", "personal_accident"},
	{"income", "personal_accident"},
	{"studio", "studio"},
	{"business", "studio"},
}

var styleAliases = []aliasRule{
	{"hot", "hot_yoga"},
	{"bikram", "hot_yoga"},
	{"aerial", "aerial"},
	{"silk", "aerial"},
	{"hammock", "aerial"},
	{"acro", "aerial"},
	{"pregnan", "pregnancy"},
	{"natal", "pregnancy"},
	{"yin", "yin"},
	{"restorative", "yin"},
	{"pilates", "pilates"},
	{"reformer", "pilates"},
	{"vinyasa", "vinyasa"},
	{"flow", "vinyasa"},
	{"power", "vinyasa"},
	{"ashtanga", "vinyasa"},
	{"hatha", "hatha"},
	{"beginner", "hatha"},
}

func foldAlias(normalized string, rules []aliasRule) (string, bool) {
	for _, r := range rules {
		if strings.Contains(normalized, r.substr) {
			return r.key, true
		}
	}
	return "", false
}

// LookupCoverage resolves a cover type by canonical key or alias.
func LookupCoverage(key string) (CoverageOption, bool) {
	n := normalizeKey(key)
	if c, ok := CoverageOptions[n]; ok {
		return c, true
	}
	if folded, ok := foldAlias(n, coverageAliases); ok {
		return CoverageOptions[folded], true
	}
	return CoverageOption{}, false
}

// CoverageKeys returns the valid cover type keys in catalog order.
func CoverageKeys() []string {
	out := make([]string, len(coverageKeys))
	copy(out, coverageKeys)
	return out
}

// LookupStyle resolves a teaching style by canonical key or alias.
func LookupStyle(key string) (Style, bool) {
	n := normalizeKey(key)
	if s, ok := Styles[n]; ok {
		return s, true
	}
	if folded, ok := foldAlias(n, styleAliases); ok {
		return Styles[folded], true
	}
	return Style{}, false
}

// StyleKeys returns the valid style keys in catalog order.
func StyleKeys() []string {
	out := make([]string, len(styleKeys))
	copy(out, styleKeys)
	return out
}

// ProvidersForStyle filters providers to those covering the given style.
func ProvidersForStyle(style string) []Provider {
	s, ok := LookupStyle(style)
	if !ok {
		return nil
	}
	var out []Provider
	for _, p := range Providers {
		for _, covered := range p.StylesCovered {
			if strings.EqualFold(covered, s.Name) || strings.Contains(strings.ToLower(s.Name), strings.ToLower(covered)) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
