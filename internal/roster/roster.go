// Package roster holds the allow-list of participant display names that may
// appear in a transcript, and the places it can be loaded from.
package roster

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Roster is an immutable set of display names. Matching is exact.
type Roster struct {
	names map[string]struct{}
}

func New(names []string) *Roster {
	r := &Roster{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		r.names[n] = struct{}{}
	}
	return r
}

func (r *Roster) Contains(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.names[name]
	return ok
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the roster sorted alphabetically.
func (r *Roster) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Source resolves the roster for a request.
type Source interface {
	Roster(ctx context.Context) (*Roster, error)
}

type static struct {
	r *Roster
}

// Static wraps a fixed roster as a Source.
func Static(r *Roster) Source {
	return static{r: r}
}

func (s static) Roster(ctx context.Context) (*Roster, error) {
	return s.r, nil
}

// ParseList reads a comma separated list of names.
func ParseList(list string) *Roster {
	return New(strings.Split(list, ","))
}

// Read parses one name per line. Blank lines and lines starting with # are skipped.
func Read(r io.Reader) (*Roster, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(names), nil
}

func LoadFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	r, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return r, nil
}
