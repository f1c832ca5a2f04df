// Package compatibility scores how well two business profiles fit together.
package compatibility

import (
	"strings"

	"github.com/alliyn/alliyn-backend/internal/domain"
)

const (
	NicknamePerfectMatch     = "Perfect Match"
	NicknameIndustryVeterans = "Industry Veterans"
	NicknameStartupSquad     = "Startup Squad"
	NicknamePartnershipPros  = "Partnership Pros"
	NicknameTechTitans       = "Tech Titans"
	NicknameGrowthGurus      = "Growth Gurus"
	NicknameLocalLegends     = "Local Legends"
)

const (
	pointsPerIndustry    = 15
	pointsPerPartnership = 8
	pointsSameState      = 15
	pointsTierBonus      = 10
	pointsNickname       = 5
	maxScore             = 100

	veteranYears = 20
	startupYears = 5

	// score returned when the viewer has no profile yet
	defaultScore = 50
)

var growthIndustries = []string{"Marketing & Advertising", "E-commerce & Online Marketplaces"}

// Default is the verdict for a viewer without a profile.
func Default() domain.Compatibility {
	return domain.Compatibility{Nickname: NicknamePerfectMatch, Reasons: []string{}, Score: defaultScore}
}

// Score is a pure weighted sum over the two profiles, capped at 100.
// A nil viewer yields Default().
func Score(viewer, candidate *domain.Profile) domain.Compatibility {
	if viewer == nil || candidate == nil {
		return Default()
	}

	score := 0
	reasons := []string{}
	nickname := NicknamePerfectMatch

	sharedIndustries := shared(candidate.Industries, viewer.Industries)
	if len(sharedIndustries) > 0 {
		score += len(sharedIndustries) * pointsPerIndustry
		reasons = append(reasons, "Both active in "+sharedIndustries[0])
	}

	sharedPartnerships := shared(candidate.Partnerships, viewer.Partnerships)
	if len(sharedPartnerships) > 0 {
		score += len(sharedPartnerships) * pointsPerPartnership
		reasons = append(reasons, "Shared interest in "+sharedPartnerships[0])
	}

	viewerYears, candidateYears := viewer.YearsInBusiness, candidate.YearsInBusiness
	switch gap := abs(viewerYears - candidateYears); {
	case gap <= 2:
		score += 20
		reasons = append(reasons, "Similar business experience levels")
	case gap <= 5:
		score += 15
		reasons = append(reasons, "Complementary experience levels")
	case gap <= 10:
		score += 10
	}

	viewerState := viewer.State()
	sameState := viewerState != "" && viewerState == candidate.State()
	if sameState {
		score += pointsSameState
		reasons = append(reasons, "Both located in the same state")
	}

	switch {
	case viewerYears >= veteranYears && candidateYears >= veteranYears:
		score += pointsTierBonus
		nickname = NicknameIndustryVeterans
		reasons = append([]string{"Both seasoned professionals with 20+ years experience"}, reasons...)
	case viewerYears <= startupYears && candidateYears <= startupYears:
		score += pointsTierBonus
		nickname = NicknameStartupSquad
		reasons = append([]string{"Both emerging businesses ready to grow together"}, reasons...)
	}

	// first applicable special nickname wins and replaces any tier nickname
	switch {
	case len(sharedPartnerships) >= 3:
		nickname = NicknamePartnershipPros
		score += pointsNickname
	case anyMatch(sharedIndustries, func(s string) bool { return strings.Contains(s, "Technology") }):
		nickname = NicknameTechTitans
		score += pointsNickname
	case anyMatch(sharedIndustries, func(s string) bool { return containsString(growthIndustries, s) }):
		nickname = NicknameGrowthGurus
		score += pointsNickname
	case sameState && len(sharedIndustries) > 0:
		nickname = NicknameLocalLegends
		score += pointsNickname
	}

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}

	return domain.Compatibility{Nickname: nickname, Reasons: reasons, Score: score}
}

// shared keeps the values of from that also appear in other, in from's order.
func shared(from, other []string) []string {
	out := []string{}
	for _, v := range from {
		if containsString(other, v) {
			out = append(out, v)
		}
	}
	return out
}

func anyMatch(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if pred(v) {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
