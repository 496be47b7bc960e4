// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package models

import (
	"time"
)

// Section names accepted by the content API. Anything else is a 404.
const (
	SectionHero       = "hero"
	SectionAbout      = "about"
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionProjects   = "projects"
	SectionSocial     = "social"
)

// KnownSections lists every valid portfolio section in display order.
var KnownSections = []string{
	SectionHero,
	SectionAbout,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionSocial,
}

// IsKnownSection reports whether name is a valid portfolio section.
func IsKnownSection(name string) bool {
	for _, s := range KnownSections {
		if s == name {
			return true
		}
	}
	return false
}

// Section is one editable block of the portfolio. Data holds the
// section's sanitized JSON document as stored.
type Section struct {
	Name      string                 `json:"name"`
	Data      map[string]interface{} `json:"data"`
	UpdatedAt time.Time              `json:"updatedAt"`
}
