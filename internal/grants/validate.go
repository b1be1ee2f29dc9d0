package grants

import (
	"fmt"
	"strings"

	"github.com/spigell/grantmatch/internal/profile"
)

// ValidationError describes one problem in a catalog.
type ValidationError struct {
	Grant   string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	grant := e.Grant
	if grant == "" {
		grant = "<no id>"
	}
	if e.Field == "" {
		return fmt.Sprintf("grant %s: %s", grant, e.Message)
	}
	return fmt.Sprintf("grant %s: %s: %s", grant, e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in a catalog.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

func validate(grants []*Grant) ValidationErrors {
	var errs ValidationErrors
	add := func(grant, field, format string, args ...any) {
		errs = append(errs, ValidationError{Grant: grant, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]int, len(grants))
	for idx, g := range grants {
		if g == nil {
			add(fmt.Sprintf("#%d", idx), "", "entry is empty")
			continue
		}

		if strings.TrimSpace(g.ID) == "" {
			add(fmt.Sprintf("#%d", idx), "id", "is required")
		} else if prev, ok := seen[g.ID]; ok {
			add(g.ID, "id", "duplicates grant #%d", prev)
		} else {
			seen[g.ID] = idx
		}

		if strings.TrimSpace(g.Title) == "" {
			add(g.ID, "title", "is required")
		}

		errs = append(errs, validateRequirements(g)...)
	}

	return errs
}

func validateRequirements(g *Grant) ValidationErrors {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Grant: g.ID, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]struct{}, len(g.Requirements))
	for idx, req := range g.Requirements {
		path := fmt.Sprintf("requirements[%d]", idx)
		if req == nil {
			add(path, "entry is empty")
			continue
		}

		if req.ID == "" {
			add(path+".id", "is required")
		} else if _, ok := seen[req.ID]; ok {
			add(path+".id", "duplicate requirement id %q", req.ID)
		} else {
			seen[req.ID] = struct{}{}
		}

		if strings.TrimSpace(req.Label) == "" {
			add(path+".label", "is required")
		}

		if req.Field != "" && !profile.IsField(req.Field) {
			add(path+".field", "unknown profile field %q", req.Field)
		}

		if req.Func != nil {
			continue
		}

		errs = append(errs, validateCheck(g.ID, path+".check", req)...)
	}

	return errs
}

func validateCheck(grantID, path string, req *Requirement) ValidationErrors {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Grant: grantID, Field: path + field, Message: fmt.Sprintf(format, args...)})
	}

	c := req.Check
	if _, ok := checkKinds[c.Kind]; !ok {
		add(".kind", "unknown check kind %q", c.Kind)
		return errs
	}

	field := c.field(req.Field)
	switch {
	case field == "":
		add(".field", "no profile field to check")
	case !profile.IsField(field):
		add(".field", "unknown profile field %q", field)
	}

	switch c.Kind {
	case CheckIncludesAny:
		if len(c.Options) == 0 {
			add(".options", "at least one option is required")
		}
		for i, option := range c.Options {
			if strings.TrimSpace(option) == "" {
				add(fmt.Sprintf(".options[%d]", i), "must not be blank")
			}
		}
	case CheckIncomeAtMost:
		if c.Limit <= 0 {
			add(".limit", "must be positive")
		}
	case CheckLevelAtLeast:
		if LevelIndex(c.Level) < 0 {
			add(".level", "unknown level %q", c.Level)
		}
	}

	return errs
}
