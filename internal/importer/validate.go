package importer

import (
	"fmt"
	"strings"
)

// ValidateImportSchema checks the import for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Targets != nil {
		if err := schema.Targets.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("targets: %w", err))
		}
	}
	if len(schema.Sections) == 0 {
		errs = append(errs, fmt.Errorf("sections: at least one section is required"))
	}

	orders := make(map[int]int)
	for i := range schema.Sections {
		errs = append(errs, validateSection(i, &schema.Sections[i], orders)...)
	}
	return errs
}

func validateSection(i int, s *SectionImport, orders map[int]int) []error {
	var errs []error
	path := fmt.Sprintf("sections[%d]", i)

	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	if s.Order != nil {
		if *s.Order <= 0 {
			errs = append(errs, fmt.Errorf("%s.order must be positive, got %d", path, *s.Order))
		} else if prev, dup := orders[*s.Order]; dup {
			errs = append(errs, fmt.Errorf("%s.order %d duplicates sections[%d]", path, *s.Order, prev))
		} else {
			orders[*s.Order] = i
		}
	}
	for j, th := range s.Themes {
		if strings.TrimSpace(th.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.themes[%d].name is required", path, j))
		}
	}
	return errs
}
