// Package category resolves a free-text expense description to a spending
// category using the admin-curated keyword rules.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"thuchi/internal/core"
)

// RuleSource is the slice of the keyword store the resolver needs.
type RuleSource interface {
	// Find returns the rule whose keyword equals the given text, or
	// core.ErrKeywordNotFound.
	Find(ctx context.Context, tuKhoa string) (core.KeywordRule, error)
	// AllDescending returns every rule sorted by keyword text descending
	// (lexicographic, bytewise).
	AllDescending(ctx context.Context) ([]core.KeywordRule, error)
}

// Resolver classifies descriptions. It is stateless: every call goes back
// to the rule source, which is small and admin-curated.
type Resolver struct {
	rules RuleSource
}

func New(rules RuleSource) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve returns the category for a description.
//
// Order: exact keyword match first, then a substring scan over all rules in
// descending keyword order, then the default category. The descending order
// approximates "longer, more specific keywords win"; it is not a true
// longest-match guarantee.
func (r *Resolver) Resolve(ctx context.Context, moTa string) (string, error) {
	moTa = strings.ToLower(strings.TrimSpace(moTa))

	rule, err := r.rules.Find(ctx, moTa)
	if err == nil {
		return rule.DanhMuc, nil
	}
	if !errors.Is(err, core.ErrKeywordNotFound) {
		return "", fmt.Errorf("find keyword: %w", err)
	}

	all, err := r.rules.AllDescending(ctx)
	if err != nil {
		return "", fmt.Errorf("list keywords: %w", err)
	}
	for _, rule := range all {
		if strings.Contains(moTa, rule.TuKhoa) {
			return rule.DanhMuc, nil
		}
	}

	return core.DefaultCategory, nil
}
