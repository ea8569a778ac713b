package listing

import (
	"context"
	"strings"

	"github.com/denysvitali/filebrowser-go/internal/models"
	"github.com/denysvitali/filebrowser-go/pkg/confine"
)

// Assembler builds render-ready listing contexts
type Assembler struct {
	enumerator *Enumerator
}

// NewAssembler creates an assembler backed by the given enumerator
func NewAssembler(enumerator *Enumerator) *Assembler {
	return &Assembler{enumerator: enumerator}
}

// Assemble enumerates dir and packages the entries with the directory's own relative path
func (a *Assembler) Assemble(ctx context.Context, dir confine.ConfinedPath) (models.ListingContext, error) {
	items, dropped, err := a.enumerator.Enumerate(ctx, dir)
	if err != nil {
		return models.ListingContext{}, err
	}

	rel, err := confine.Relativize(dir.String(), dir.Root())
	if err != nil {
		return models.ListingContext{}, err
	}

	return models.ListingContext{
		Path:    rel,
		Parent:  parentOf(rel),
		Crumbs:  Breadcrumbs(rel),
		Items:   items,
		Dropped: dropped,
	}, nil
}

// Breadcrumbs splits a relative path into its cumulative prefixes.
// "/a/b" yields [{a /a} {b /a/b}]; the root yields an empty trail.
func Breadcrumbs(rel string) []models.Crumb {
	crumbs := []models.Crumb{}
	prefix := ""
	for _, part := range strings.Split(strings.Trim(rel, "/"), "/") {
		if part == "" {
			continue
		}
		prefix += "/" + part
		crumbs = append(crumbs, models.Crumb{Name: part, Path: prefix})
	}
	return crumbs
}

func parentOf(rel string) string {
	if rel == "/" || rel == "" {
		return ""
	}
	i := strings.LastIndexByte(rel, '/')
	if i <= 0 {
		return "/"
	}
	return rel[:i]
}
