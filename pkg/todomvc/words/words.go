// Package words generates random task labels.
//
// Labels are sequences of lowercase dictionary words joined by single spaces.
// Nothing guarantees uniqueness: two calls may return the same label.
package words

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// Source produces labels of n words.
type Source interface {
	Words(n int) string
}

// Generator is a Source backed by gofakeit. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// New returns a Generator. A zero seed draws a random one; any other seed
// makes the sequence reproducible.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Words returns n words joined by single spaces. n <= 0 yields "".
func (g *Generator) Words(n int) string {
	if n <= 0 {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, n)
	for len(out) < n {
		w := strings.ToLower(strings.TrimSpace(g.faker.Word()))
		if w == "" || strings.ContainsAny(w, " \t\n") {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}
