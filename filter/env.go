package filter

import (
	"encoding/json"
	"strings"

	"github.com/s0up4200/timekeeper/timing"
)

// helperFunctions returns the functions available to every expression
func helperFunctions() map[string]any {
	funcs := make(map[string]any, 2)
	addHelperFunctions(funcs)
	return funcs
}

func addHelperFunctions(env map[string]any) {
	env["hours"] = hours
	env["includes"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
}

// newRowEnvironment exposes every row key as a variable, plus the whole row
// as "row" and the project's title as "projectTitle". Helpers shadow row
// keys of the same name.
func newRowEnvironment(row map[string]any) map[string]any {
	env := make(map[string]any, len(row)+8)
	for k, v := range row {
		env[k] = v
	}
	addHelperFunctions(env)
	env["row"] = row
	env["projectTitle"] = timing.ReportRow(row).ProjectTitle()
	return env
}

// hours converts a duration in seconds to hours. Non-numeric values are 0.
func hours(seconds any) float64 {
	switch v := seconds.(type) {
	case float64:
		return v / 3600
	case int:
		return float64(v) / 3600
	case int64:
		return float64(v) / 3600
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f / 3600
	}
	return 0
}
