// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-debrief/pkg/types"
)

// LoadProfile reads a UserIntent from a YAML profile file, so a user can
// reuse a curated intent across runs instead of re-extracting it from a
// prompt each time.
func LoadProfile(path string) (types.UserIntent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.UserIntent{}, fmt.Errorf("reading profile: %w", err)
	}

	var intent types.UserIntent
	if err := yaml.Unmarshal(data, &intent); err != nil {
		return types.UserIntent{}, fmt.Errorf("parsing profile: %w", err)
	}

	intent.Topics = cleanList(intent.Topics)
	intent.PainPoints = cleanList(intent.PainPoints)
	intent.NegativeKeywords = cleanList(intent.NegativeKeywords)

	if intent.IsEmpty() {
		return types.UserIntent{}, fmt.Errorf("profile %s has no topics or pain points", path)
	}
	return intent, nil
}

// SaveProfile writes a UserIntent to a YAML profile file.
func SaveProfile(path string, intent types.UserIntent) error {
	data, err := yaml.Marshal(intent)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
