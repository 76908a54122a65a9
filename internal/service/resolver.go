package service

import (
	"fmt"
	"strings"

	"wildberries/parser/internal/domain"

	"github.com/samber/lo"
)

// PathResolver walks the menu tree along a catalog path such as
// "https://www.wildberries.ru/catalog/elektronika/smartfony-i-telefony/vse-smartfony".
//
// By default a segment matches the first node whose url contains it as a
// substring. Short segments can therefore land on an unrelated earlier node
// ("igry" matches "/catalog/igrushki"); set exactMatch to compare against the
// node's last url segment instead. When the matched node has no children the
// next segment is searched among that node's siblings.
type PathResolver struct {
	prefix     string
	exactMatch bool
}

func NewPathResolver(prefix string, exactMatch bool) *PathResolver {
	return &PathResolver{
		prefix:     prefix,
		exactMatch: exactMatch,
	}
}

// Resolve returns the leaf node at path. The leaf must carry a shard and a subject query.
func (r *PathResolver) Resolve(path string, tree *domain.CategoryNode) (*domain.CategoryNode, error) {
	segments := r.segments(path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty catalog path %q", domain.ErrCategoryNotFound, path)
	}

	current := tree
	siblings := tree.Children
	for _, segment := range segments {
		// A node without children keeps matching among the nodes it was found with.
		candidates := siblings
		if current.HasChildren() {
			candidates = current.Children
		}

		next, ok := lo.Find(candidates, func(n domain.CategoryNode) bool {
			return r.matches(segment, &n)
		})
		if !ok {
			return nil, fmt.Errorf("%w: no category matches %q in %q",
				domain.ErrCategoryNotFound, segment, path)
		}
		siblings = candidates
		current = &next
	}

	if current.Shard == "" || current.SubjectID() == "" {
		return nil, fmt.Errorf("%w: %q is not a listable category (shard=%q, query=%q)",
			domain.ErrCategoryNotFound, current.URL, current.Shard, current.Query)
	}

	return current, nil
}

func (r *PathResolver) segments(path string) []string {
	trimmed := strings.TrimPrefix(path, r.prefix)
	return lo.Compact(strings.Split(trimmed, "/"))
}

func (r *PathResolver) matches(segment string, n *domain.CategoryNode) bool {
	if r.exactMatch {
		return n.LastSegment() == segment
	}
	return strings.Contains(n.URL, segment)
}
