package models

import "strconv"

// DefaultServiceIcon is shown when a service has no icon of its own.
const DefaultServiceIcon = "📋"

// Service represents an entry of the local services directory.
// ID is assigned by the store as max(existing)+1.
type Service struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Icon        string `json:"icon" yaml:"icon"`
}

// ServiceFields holds every editable field of a Service.
type ServiceFields struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Icon        string `json:"icon" yaml:"icon"`
}

// ServicePatch contains optional fields that can be merged into a Service.
type ServicePatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// Complete reports whether the required display fields are filled.
func (f ServiceFields) Complete() bool {
	return f.Title != "" && f.Description != "" && f.Category != ""
}

// Patch converts the fields into a patch that overwrites every field.
func (f ServiceFields) Patch() ServicePatch {
	return ServicePatch{
		Title:       &f.Title,
		Description: &f.Description,
		Category:    &f.Category,
		Icon:        &f.Icon,
	}
}

// Fields returns the editable part of s.
func (s Service) Fields() ServiceFields {
	return ServiceFields{
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Icon:        s.Icon,
	}
}

// Apply returns a copy of s with every non-nil patch field merged in.
func (s Service) Apply(p ServicePatch) Service {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Icon != nil {
		s.Icon = *p.Icon
	}
	return s
}

// ParseServiceID accepts only the canonical decimal form of a positive id, so
// "010", "+1" and "0x2" are rejected.
func ParseServiceID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 || strconv.Itoa(id) != raw {
		return 0, false
	}
	return id, true
}
