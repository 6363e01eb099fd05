package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/service"
)

// resolveScanLimit bounds how many recent runs a prefix lookup considers.
const resolveScanLimit = 500

// resolveRunID resolves a run identifier which can be a full UUID or a
// unique prefix of one, as shown by "runs list".
func resolveRunID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("run id is required")
	}
	if _, err := app.Outlines.GetRun(ctx, input); err == nil {
		return input, nil
	} else if !service.IsNotFound(err) {
		return "", err
	}

	runs, err := app.Outlines.ListRuns(ctx, resolveScanLimit)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, r := range runs {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("run %q not found", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("run prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
