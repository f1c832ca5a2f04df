package memory

import "github.com/alliyn/alliyn-backend/internal/domain"

const placeholderLogo = "/placeholder.svg?height=100&width=100"

// SeedProfiles is the demo candidate pool served when no database is configured.
func SeedProfiles() []domain.Profile {
	profiles := seedProfiles()
	for i := range profiles {
		profiles[i].CompanyLogo = placeholderLogo
		profiles[i].SelectedTheme = domain.ThemeDefault
		profiles[i].IsActive = true
	}
	return profiles
}

func seedProfiles() []domain.Profile {
	return []domain.Profile{
		{
			ID:              1,
			Name:            "Melissa Rodriguez",
			BusinessName:    "Strategic Marketing Solutions",
			Title:           "Founder & Creative Director",
			Description:     "Award-winning marketing agency specializing in brand development and digital campaigns for growing businesses.",
			YearsInBusiness: 7,
			Partnerships:    []string{"Co-Branding", "Referral Partner", "Event Collaborations"},
			Industries:      []string{"Marketing & Advertising", "Professional, Scientific & Technical Services", "Creative Services"},
			Location:        "Denver, CO",
			Avatar:          "/profiles/melissa-marketing.webp",
		},
		{
			ID:              2,
			Name:            "Robert Harrison",
			BusinessName:    "Harrison Capital Group",
			Title:           "Managing Partner",
			Description:     "Private equity firm focused on mid-market acquisitions and growth capital investments.",
			YearsInBusiness: 15,
			Partnerships:    []string{"Strategic Alliances", "Joint Ventures", "Investment Partnerships"},
			Industries:      []string{"Finance & Insurance", "Professional, Scientific & Technical Services", "Investment Management"},
			Location:        "Chicago, IL",
			Avatar:          "/profiles/robert-executive.jpeg",
		},
		{
			ID:              3,
			Name:            "David Chen",
			BusinessName:    "NextGen Ventures",
			Title:           "CEO & Co-Founder",
			Description:     "Venture capital firm investing in early-stage technology companies.",
			YearsInBusiness: 4,
			Partnerships:    []string{"Investment Partnerships", "Strategic Alliances", "Mentorship Programs"},
			Industries:      []string{"Technology (IT) & Software", "Finance & Insurance", "Professional, Scientific & Technical Services"},
			Location:        "San Francisco, CA",
			Avatar:          "/profiles/david-entrepreneur.jpeg",
		},
		{
			ID:              4,
			Name:            "Samantha Williams",
			BusinessName:    "Executive Leadership Consulting",
			Title:           "Principal Consultant",
			Description:     "Leadership consulting firm helping C-suite executives maximize their impact.",
			YearsInBusiness: 9,
			Partnerships:    []string{"Strategic Alliances", "Referral Partner", "Training Partnerships"},
			Industries:      []string{"Professional, Scientific & Technical Services", "Management Consulting", "Executive Coaching"},
			Location:        "Atlanta, GA",
			Avatar:          "/profiles/samantha-consulting.jpeg",
		},
		{
			ID:              5,
			Name:            "Emma Thompson",
			BusinessName:    "Creative Collective Studios",
			Title:           "Creative Director & Owner",
			Description:     "Creative agency specializing in brand identity, web design, and content creation.",
			YearsInBusiness: 6,
			Partnerships:    []string{"Co-Branding", "Event Collaborations", "Creative Partnerships"},
			Industries:      []string{"Creative Services", "Marketing & Advertising", "Technology (IT) & Software"},
			Location:        "Portland, OR",
			Avatar:          "/profiles/emma-creative.jpeg",
		},
		{
			ID:              6,
			Name:            "Lisa Park",
			BusinessName:    "TechForward Solutions",
			Title:           "Founder & CTO",
			Description:     "Enterprise software company building AI integration, cloud migration and digital transformation solutions.",
			YearsInBusiness: 8,
			Partnerships:    []string{"Technology Partnerships", "Strategic Alliances", "Integration Partners"},
			Industries:      []string{"Technology (IT) & Software", "Professional, Scientific & Technical Services", "Information Technology"},
			Location:        "Seattle, WA",
			Avatar:          "/profiles/lisa-tech.jpeg",
		},
		{
			ID:              7,
			Name:            "Angela Davis",
			BusinessName:    "Davis Legal Advisors",
			Title:           "Managing Partner",
			Description:     "Boutique law firm specializing in corporate law, M&A and business formation.",
			YearsInBusiness: 12,
			Partnerships:    []string{"Referral Partner", "Strategic Alliances", "Professional Networks"},
			Industries:      []string{"Legal Services", "Professional, Scientific & Technical Services", "Business Consulting"},
			Location:        "New York, NY",
			Avatar:          "/profiles/angela-legal.jpeg",
		},
		{
			ID:              8,
			Name:            "James Mitchell",
			BusinessName:    "Startup Accelerator Labs",
			Title:           "Founder & Managing Director",
			Description:     "Early-stage accelerator providing funding, mentorship and resources to innovative entrepreneurs.",
			YearsInBusiness: 5,
			Partnerships:    []string{"Investment Partnerships", "Mentorship Programs", "Strategic Alliances"},
			Industries:      []string{"Technology (IT) & Software", "Professional, Scientific & Technical Services", "Venture Capital"},
			Location:        "Austin, TX",
			Avatar:          "/profiles/james-startup.jpeg",
		},
		{
			ID:              9,
			Name:            "Michael Chen",
			BusinessName:    "GreenBuild Construction",
			Title:           "Managing Director",
			Description:     "Sustainable construction company focused on eco-friendly commercial and residential projects.",
			YearsInBusiness: 22,
			Partnerships:    []string{"Affiliate Partnerships", "Sponsorship Agreements", "Referral Partner"},
			Industries:      []string{"Construction", "Real Estate & Rental Leasing"},
			Location:        "Austin, TX",
			Avatar:          "/placeholder.svg?height=400&width=400",
		},
		{
			ID:              10,
			Name:            "Sarah Johnson",
			BusinessName:    "TechFlow Solutions",
			Title:           "CEO & Founder",
			Description:     "Software company specializing in AI-powered business automation tools.",
			YearsInBusiness: 8,
			Partnerships:    []string{"Strategic Alliances", "Joint Ventures", "Co-Branding"},
			Industries:      []string{"Technology (IT) & Software", "Professional, Scientific & Technical Services"},
			Location:        "San Francisco, CA",
			Avatar:          "/placeholder.svg?height=400&width=400",
		},
	}
}
