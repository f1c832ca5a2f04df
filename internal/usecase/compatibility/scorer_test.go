package compatibility

import (
	"reflect"
	"testing"

	"github.com/alliyn/alliyn-backend/internal/domain"
)

func profile(years int, location string, industries, partnerships []string) *domain.Profile {
	return &domain.Profile{
		YearsInBusiness: years,
		Location:        location,
		Industries:      industries,
		Partnerships:    partnerships,
	}
}

func TestScore(t *testing.T) {
	tech := "Technology (IT) & Software"

	tests := []struct {
		name      string
		viewer    *domain.Profile
		candidate *domain.Profile
		want      domain.Compatibility
	}{
		{
			name:      "viewer without profile",
			viewer:    nil,
			candidate: profile(3, "Denver, CO", []string{tech}, nil),
			want:      domain.Compatibility{Nickname: NicknamePerfectMatch, Reasons: []string{}, Score: 50},
		},
		{
			name:      "nothing in common",
			viewer:    profile(2, "Denver, CO", []string{"Construction"}, []string{"Joint Ventures"}),
			candidate: profile(15, "Seattle, WA", []string{"Legal Services"}, []string{"Co-Branding"}),
			want:      domain.Compatibility{Nickname: NicknamePerfectMatch, Reasons: []string{}, Score: 0},
		},
		{
			name:      "startups sharing industry and partnership",
			viewer:    profile(3, "Denver, CO", []string{"Construction", "Finance & Insurance"}, []string{"Joint Ventures", "Co-Branding"}),
			candidate: profile(4, "Seattle, WA", []string{"Finance & Insurance"}, []string{"Co-Branding"}),
			want: domain.Compatibility{
				Nickname: NicknameStartupSquad,
				Reasons: []string{
					"Both emerging businesses ready to grow together",
					"Both active in Finance & Insurance",
					"Shared interest in Co-Branding",
					"Similar business experience levels",
				},
				Score: 15 + 8 + 20 + 10,
			},
		},
		{
			name:      "veterans sharing technology",
			viewer:    profile(22, "Austin, TX", []string{tech}, nil),
			candidate: profile(25, "Seattle, WA", []string{tech}, nil),
			want: domain.Compatibility{
				Nickname: NicknameTechTitans,
				Reasons: []string{
					"Both seasoned professionals with 20+ years experience",
					"Both active in " + tech,
					"Complementary experience levels",
				},
				Score: 15 + 15 + 10 + 5,
			},
		},
		{
			name:      "three shared partnerships",
			viewer:    profile(8, "Denver, CO", []string{"Construction"}, []string{"Joint Ventures", "Co-Branding", "Referral Partner"}),
			candidate: profile(20, "Seattle, WA", []string{"Legal Services"}, []string{"Referral Partner", "Joint Ventures", "Co-Branding"}),
			want: domain.Compatibility{
				Nickname: NicknamePartnershipPros,
				Reasons:  []string{"Shared interest in Referral Partner"},
				Score:    3*8 + 5,
			},
		},
		{
			name:      "local legends",
			viewer:    profile(10, "Austin, TX", []string{"Construction"}, nil),
			candidate: profile(22, "Dallas, TX", []string{"Construction"}, nil),
			want: domain.Compatibility{
				Nickname: NicknameLocalLegends,
				Reasons:  []string{"Both active in Construction", "Both located in the same state"},
				Score:    15 + 15 + 5,
			},
		},
		{
			name:      "growth gurus with medium gap",
			viewer:    profile(6, "Denver, CO", []string{"Marketing & Advertising"}, nil),
			candidate: profile(14, "Portland, OR", []string{"Marketing & Advertising"}, nil),
			want: domain.Compatibility{
				Nickname: NicknameGrowthGurus,
				Reasons:  []string{"Both active in Marketing & Advertising"},
				Score:    15 + 10 + 5,
			},
		},
		{
			name:      "locations without a state never match",
			viewer:    profile(8, "Remote", nil, nil),
			candidate: profile(30, "Online", nil, nil),
			want:      domain.Compatibility{Nickname: NicknamePerfectMatch, Reasons: []string{}, Score: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.viewer, tt.candidate)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Score() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreIsClamped(t *testing.T) {
	industries := []string{"A", "B", "C", "D", "E"}
	partnerships := []string{"P1", "P2", "P3"}
	viewer := profile(3, "Denver, CO", industries, partnerships)
	candidate := profile(3, "Boulder, CO", industries, partnerships)

	got := Score(viewer, candidate)
	if got.Score != 100 {
		t.Fatalf("expected clamp to 100, got %d", got.Score)
	}
	if got.Nickname != NicknamePartnershipPros {
		t.Fatalf("nickname = %q", got.Nickname)
	}
}

func TestSharedIndustryAndPartnershipAlwaysReported(t *testing.T) {
	pool := []string{"Construction", "Legal Services", "Finance & Insurance"}
	partnerships := []string{"Joint Ventures", "Co-Branding"}

	for _, industry := range pool {
		for _, partnership := range partnerships {
			for _, years := range [][2]int{{1, 2}, {8, 30}, {21, 40}} {
				viewer := profile(years[0], "Denver, CO", []string{industry}, []string{partnership})
				candidate := profile(years[1], "Austin, TX", []string{industry}, []string{partnership})
				got := Score(viewer, candidate)

				if got.Score < 15+8 {
					t.Fatalf("%s/%s/%v: score %d misses contributions", industry, partnership, years, got.Score)
				}
				if !containsString(got.Reasons, "Both active in "+industry) ||
					!containsString(got.Reasons, "Shared interest in "+partnership) {
					t.Fatalf("%s/%s/%v: reasons %v", industry, partnership, years, got.Reasons)
				}
				if got.Score > 100 {
					t.Fatalf("score out of range: %d", got.Score)
				}
			}
		}
	}
}
