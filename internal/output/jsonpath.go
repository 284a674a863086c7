package output

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Select extracts the part of a JSON document named by a gjson path. A
// leading "$." is accepted and a bare "$" selects the whole document.
func Select(body []byte, path string) ([]byte, error) {
	if len(path) > 0 && path[0] == '$' {
		if len(path) > 1 && path[1] == '.' {
			path = path[2:]
		} else if len(path) == 1 {
			path = "@this"
		}
	}

	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return nil, fmt.Errorf("path %q not found in result", path)
	}
	return []byte(result.Raw), nil
}
