// Package workload reconciles generated outlines against institutional hour quotas.
package workload

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/contract"
	"github.com/alexanderramin/syllabus/internal/domain"
)

// Reconcile mutates sections in place until the lecture, lab and practice theme
// counts match their nonzero targets, then appends pairing fillers so that no
// section is left with an unpaired lecture or lab theme.
//
// Deficits are filled by promoting independent-study themes before synthesizing
// new ones; surpluses are demoted to independent study. Themes are never deleted.
func Reconcile(sections []*domain.Section, targets domain.Targets) contract.Adjustments {
	adj := contract.NewAdjustments()

	for _, wt := range domain.BalancedWorkTypes {
		target := targets.For(wt)
		if target == 0 {
			continue
		}

		deficit := target - domain.CountByType(sections)[wt]
		switch {
		case deficit > 0:
			promoted := promote(sections, wt, deficit)
			deficit -= promoted
			synthesized := synthesize(sections, wt, deficit)
			deficit -= synthesized

			adj.Promoted[wt] = promoted
			adj.Synthesized[wt] = synthesized
			if deficit > 0 {
				adj.Unresolved[wt] = deficit
			}
		case deficit < 0:
			adj.Demoted[wt] = demote(sections, wt, -deficit)
		}
	}

	adj.FillersAdded = pairSections(sections)
	return adj
}

// promote retypes up to n independent-study themes to wt, in section then
// theme order. Pairing fillers are left alone.
func promote(sections []*domain.Section, wt domain.WorkType, n int) int {
	converted := 0
	for _, s := range sections {
		for i, count := 0, len(s.Themes); i < count && converted < n; i++ {
			th := s.Themes[i]
			if th.Type != domain.WorkIndependentStudy || th.Filler {
				continue
			}
			th.Retype(wt)
			converted++
		}
		if converted == n {
			break
		}
	}
	return converted
}

// synthesize appends n placeholder themes of type wt, one section at a time,
// wrapping around. It adds nothing when there are no sections.
func synthesize(sections []*domain.Section, wt domain.WorkType, n int) int {
	if n <= 0 || len(sections) == 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		s := sections[i%len(sections)]
		s.Themes = append(s.Themes, &domain.Theme{
			Name:      fmt.Sprintf("additional topic %d", i+1),
			Label:     wt.Label(),
			LabelKind: domain.LabelRecognized,
			Type:      wt,
		})
	}
	return n
}

// demote retypes up to n themes of type wt to independent study, scanning
// sections in order and each section from its last theme backward.
func demote(sections []*domain.Section, wt domain.WorkType, n int) int {
	demoted := 0
	for _, s := range sections {
		for i := len(s.Themes) - 1; i >= 0 && demoted < n; i-- {
			th := s.Themes[i]
			if th.Type != wt {
				continue
			}
			th.Retype(domain.WorkIndependentStudy)
			demoted++
		}
		if demoted == n {
			break
		}
	}
	return demoted
}

// pairSections leaves exactly one pairing filler in every section with an odd
// number of lecture and lab themes, and none elsewhere. Stale fillers are
// unflagged rather than removed. Returns the number of fillers appended.
func pairSections(sections []*domain.Section) int {
	added := 0
	for _, s := range sections {
		need := s.PairedCount()%2 == 1
		for _, th := range s.Themes {
			if !th.Filler {
				continue
			}
			if need {
				need = false
				continue
			}
			th.Filler = false
		}
		if need {
			s.Themes = append(s.Themes, newFiller())
			added++
		}
	}
	return added
}

func newFiller() *domain.Theme {
	return &domain.Theme{
		Name:      domain.FillerThemeName,
		Label:     domain.WorkIndependentStudy.Label(),
		LabelKind: domain.LabelRecognized,
		Type:      domain.WorkIndependentStudy,
		Filler:    true,
	}
}
