// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package content

import (
	"github.com/mfallows/folio/internal/models"
	"github.com/mfallows/folio/internal/validation"
)

// sectionSchemas maps each section to the loose shape its admin updates
// are sanitized against. String fields are HTML-escaped and trimmed;
// array payloads (skill categories, project entries) pass through as
// opaque JSON. Fields not listed here are dropped on write.
var sectionSchemas = map[string]validation.Schema{
	models.SectionHero: {
		"title":       validation.TypeString,
		"subtitle":    validation.TypeString,
		"description": validation.TypeString,
		"ctaText":     validation.TypeString,
		"ctaLink":     validation.TypeString,
	},
	models.SectionAbout: {
		"heading":    validation.TypeString,
		"paragraphs": validation.TypeArray,
		"image":      validation.TypeString,
		"resumeLink": validation.TypeString,
	},
	models.SectionSkills: {
		"heading":    validation.TypeString,
		"categories": validation.TypeArray,
	},
	models.SectionExperience: {
		"heading": validation.TypeString,
		"entries": validation.TypeArray,
	},
	models.SectionEducation: {
		"heading": validation.TypeString,
		"entries": validation.TypeArray,
	},
	models.SectionProjects: {
		"heading":  validation.TypeString,
		"entries":  validation.TypeArray,
		"featured": validation.TypeBoolean,
	},
	models.SectionSocial: {
		"links": validation.TypeArray,
		"email": validation.TypeString,
	},
}

// SchemaFor returns the sanitization schema for a section, or false for
// unknown sections.
func SchemaFor(section string) (validation.Schema, bool) {
	schema, ok := sectionSchemas[section]
	return schema, ok
}
