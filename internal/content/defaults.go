// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package content

import (
	"embed"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mfallows/folio/internal/models"
)

//go:embed defaults/*.json
var defaultsFS embed.FS

// loadDefaults parses the embedded default payload for every known
// section. A missing or malformed file is a build defect, so failures
// surface as errors at startup rather than at read time.
func loadDefaults() (map[string]map[string]interface{}, error) {
	defaults := make(map[string]map[string]interface{}, len(models.KnownSections))

	for _, section := range models.KnownSections {
		raw, err := defaultsFS.ReadFile("defaults/" + section + ".json")
		if err != nil {
			return nil, fmt.Errorf("read default for section %q: %w", section, err)
		}

		var data map[string]interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse default for section %q: %w", section, err)
		}
		defaults[section] = data
	}

	return defaults, nil
}
