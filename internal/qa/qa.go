// Package qa loads the static question-to-answer mapping consulted before
// any document search.
package qa

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docqa/internal/fuzzy"
)

// DefaultCutoff is the minimum similarity ratio for a question match.
const DefaultCutoff = 0.6

// Mapping maps lower-cased canonical questions to answers. A nil Mapping
// means no Q&A data was supplied.
type Mapping map[string]string

// Parse decodes a YAML document of question: answer pairs. Keys are
// lower-cased and trimmed. When two keys collide after lower-casing the
// later one in file order wins.
func Parse(r io.Reader) (Mapping, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Mapping{}, nil
		}
		return nil, fmt.Errorf("decode qa yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return Mapping{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode qa yaml: line %d: expected a mapping of question: answer", root.Line)
	}

	m := make(Mapping, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("decode qa yaml: line %d: answer for %q must be a string", v.Line, k.Value)
		}
		q := strings.ToLower(strings.TrimSpace(k.Value))
		if q == "" {
			continue
		}
		m[q] = v.Value
	}
	return m, nil
}

// LoadFile reads a mapping from a YAML file.
func LoadFile(path string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open qa file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Questions returns the mapping keys in sorted order.
func (m Mapping) Questions() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup fuzzy-matches the lower-cased query against the questions and
// returns the answer of the single best match at or above cutoff. A
// non-positive cutoff uses DefaultCutoff.
func (m Mapping) Lookup(query string, cutoff float64) (string, bool) {
	if len(m) == 0 {
		return "", false
	}
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	q, ok := fuzzy.BestMatch(strings.ToLower(query), m.Questions(), cutoff)
	if !ok {
		return "", false
	}
	return m[q], true
}
