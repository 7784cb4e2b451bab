package personalize

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadTemplate reads a base résumé template from a JSON file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé template %s: %w", path, err)
	}

	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse résumé template %s: %w", path, err)
	}
	if tpl.Summary == "" && len(tpl.Skills) == 0 && len(tpl.Projects) == 0 {
		return nil, fmt.Errorf("résumé template %s is empty", path)
	}
	return &tpl, nil
}
