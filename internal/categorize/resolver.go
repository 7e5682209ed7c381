// Package categorize resolves a merchant name to a spending category in
// two tiers: a static merchant-pattern table, then a generative
// classifier constrained to the closed category list. Misses from both
// tiers land in the fallback category rather than inventing a name.
package categorize

import (
	"context"
	"fmt"
	"strings"
)

// Fallback is the category used whenever neither tier produces a name
// from the closed list.
const Fallback = "Other"

// Classifier is the generative tier boundary. Implementations must
// return exactly one name from categories; anything else is treated as
// ambiguous by the resolver.
type Classifier interface {
	Classify(ctx context.Context, merchant string, categories []string) (string, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, merchant string, categories []string) (string, error)

func (f ClassifierFunc) Classify(ctx context.Context, merchant string, categories []string) (string, error) {
	return f(ctx, merchant, categories)
}

// AmbiguousError records a generative-tier response that was not one of
// the allowed category names. It accompanies a fallback resolution for
// logging; it never fails the row.
type AmbiguousError struct {
	Merchant string
	Response string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous categorization for %q: %q is not a known category", e.Merchant, e.Response)
}

// Resolver performs the two-tier lookup. It memoizes per merchant for
// the lifetime of one run so the classifier is never called twice for
// the same merchant string. Not safe for concurrent use; the pipeline
// resolves sequentially per batch.
type Resolver struct {
	rules      []Rule
	classifier Classifier
	categories []string
	known      map[string]string // lowercased name -> canonical name
	memo       map[string]memoEntry
}

type memoEntry struct {
	category string
	fellBack bool
}

// NewResolver builds a resolver over the closed category list. A nil
// classifier disables the generative tier; pattern misses then resolve
// straight to the fallback.
func NewResolver(rules []Rule, classifier Classifier, categories []string) *Resolver {
	known := make(map[string]string, len(categories))
	for _, c := range categories {
		known[strings.ToLower(c)] = c
	}
	lowered := make([]Rule, len(rules))
	for i, rule := range rules {
		lowered[i] = Rule{Pattern: strings.ToLower(rule.Pattern), Category: rule.Category}
	}
	return &Resolver{
		rules:      lowered,
		classifier: classifier,
		categories: categories,
		known:      known,
		memo:       make(map[string]memoEntry),
	}
}

// Known reports whether name is in the closed category list,
// case-insensitively.
func (r *Resolver) Known(name string) bool {
	_, ok := r.known[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Canonical returns the list spelling of a known category name.
func (r *Resolver) Canonical(name string) string {
	if c, ok := r.known[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return name
}

// Resolve returns the category for a merchant, and whether the fallback
// category was used. The pattern tier is deterministic: first match in
// declared order wins. The generative tier is best-effort; a returned
// error (AmbiguousError or a transport failure) accompanies a fallback
// resolution and is for logging only.
func (r *Resolver) Resolve(ctx context.Context, merchantName string) (category string, fellBack bool, err error) {
	if entry, ok := r.memo[merchantName]; ok {
		return entry.category, entry.fellBack, nil
	}

	category, fellBack, err = r.resolve(ctx, merchantName)
	r.memo[merchantName] = memoEntry{category: category, fellBack: fellBack}
	return category, fellBack, err
}

func (r *Resolver) resolve(ctx context.Context, merchantName string) (string, bool, error) {
	lower := strings.ToLower(merchantName)
	for _, rule := range r.rules {
		if strings.Contains(lower, rule.Pattern) {
			return rule.Category, false, nil
		}
	}

	if r.classifier == nil || len(r.categories) == 0 {
		return Fallback, true, nil
	}

	name, err := r.classifier.Classify(ctx, merchantName, r.categories)
	if err != nil {
		return Fallback, true, err
	}
	name = strings.TrimSpace(name)
	if canonical, ok := r.known[strings.ToLower(name)]; ok {
		return canonical, false, nil
	}
	return Fallback, true, &AmbiguousError{Merchant: merchantName, Response: name}
}
