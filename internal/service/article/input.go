package article

import (
	"strings"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// ListInput filters and paginates the global article list.
type ListInput struct {
	// Tag keeps articles carrying the given tag name.
	Tag *string
	// Author keeps articles written by the given username.
	Author *string
	// Favorited keeps articles favorited by the given username.
	Favorited *string

	Limit  int
	Offset int
}

// FeedInput paginates the personal feed.
type FeedInput struct {
	Limit  int
	Offset int
}

// CreateInput carries a new article's fields.
type CreateInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// Validate checks required fields.
func (in CreateInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "can't be blank"})
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "can't be blank"})
	}
	if strings.TrimSpace(in.Body) == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "can't be blank"})
	}
	for _, tag := range in.TagList {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, domain.FieldError{Field: "tagList", Message: "can't contain blank tags"})
			break
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput carries the fields of a partial article update. Nil means
// leave unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Body        *string
}

// Validate rejects blank values for fields that are present.
func (in UpdateInput) Validate() error {
	var errs []domain.FieldError
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "can't be blank"})
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "can't be blank"})
	}
	if in.Body != nil && strings.TrimSpace(*in.Body) == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "can't be blank"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// clampLimit ensures a page size is within [1, max], defaulting from <=0.
func clampLimit(limit, max, defaultVal int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit > max {
		return max
	}
	return limit
}

// clampOffset floors an offset at zero.
func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// normalizeTags trims, drops empties and de-duplicates while keeping the
// first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
