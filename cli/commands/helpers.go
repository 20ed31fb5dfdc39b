package commands

import (
	"fmt"

	"github.com/satishbabariya/sqlkit/cli/internal/config"
	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/document"
)

// namedQuery is one built document from a query file.
type namedQuery struct {
	label string
	query ast.Query
}

// loadQueries reads path and builds every document in it. The first
// document that fails to build aborts the load.
func loadQueries(path string) ([]namedQuery, error) {
	docs, err := document.LoadFile(config.AppFs, path)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: no query documents", path)
	}

	out := make([]namedQuery, len(docs))
	for i, d := range docs {
		label := documentLabel(d, i)
		q, err := d.Query()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		out[i] = namedQuery{label: label, query: q}
	}
	return out, nil
}

func documentLabel(d document.Document, i int) string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("#%d %s %s", i+1, d.Kind, d.Table)
}

// returnsRows reports whether running q yields a result set.
func returnsRows(q ast.Query) bool {
	return q.Kind() == ast.KindSelect || len(q.Base().Returning) > 0
}
