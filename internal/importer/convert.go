package importer

import (
	"errors"
	"sort"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// ConvertImportSchema validates the import and builds sections from it.
// Sections with an explicit order sort by it; the rest follow in file order.
// Orders are then renumbered from 1.
func ConvertImportSchema(schema *ImportSchema) ([]*domain.Section, error) {
	if errs := ValidateImportSchema(schema); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	type indexed struct {
		pos   int
		order int
		sec   *domain.Section
	}
	items := make([]indexed, 0, len(schema.Sections))
	for i, s := range schema.Sections {
		sec := &domain.Section{Name: strings.TrimSpace(s.Name)}
		for _, th := range s.Themes {
			sec.Themes = append(sec.Themes, convertTheme(th))
		}
		order := 0
		if s.Order != nil {
			order = *s.Order
		}
		items = append(items, indexed{pos: i, order: order, sec: sec})
	}

	sort.SliceStable(items, func(a, b int) bool {
		oa, ob := items[a].order, items[b].order
		switch {
		case oa == 0 && ob == 0:
			return items[a].pos < items[b].pos
		case oa == 0:
			return false
		case ob == 0:
			return true
		default:
			return oa < ob
		}
	})

	sections := make([]*domain.Section, len(items))
	for i, it := range items {
		sections[i] = it.sec
	}
	domain.Renumber(sections)
	return sections, nil
}

func convertTheme(th ThemeImport) *domain.Theme {
	theme := &domain.Theme{
		Name:      strings.TrimSpace(th.Name),
		LabelKind: domain.LabelNone,
		Type:      domain.WorkIndependentStudy,
	}
	label := strings.ToLower(strings.TrimSpace(th.Type))
	if label == "" {
		return theme
	}
	theme.Label = label
	wt, ok := domain.ParseWorkType(label)
	theme.Type = wt
	if ok {
		theme.LabelKind = domain.LabelRecognized
	} else {
		theme.LabelKind = domain.LabelUnrecognized
	}
	return theme
}
