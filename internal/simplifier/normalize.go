package simplifier

import (
	"encoding/json"
	"strconv"

	"labsimplify/internal/domain"
)

// Normalize converts a decoded JSON object into a report. Every field is coerced to a
// string; missing or falsy values take their defaults and unknown keys are ignored.
func Normalize(obj map[string]interface{}) domain.SimplifiedReport {
	summary, _ := coerce(obj["summary"])
	report := domain.NewSimplifiedReport(summary)

	if findings, ok := obj["findings"].([]interface{}); ok {
		for _, raw := range findings {
			f, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			report.Findings = append(report.Findings, normalizeFinding(f))
		}
	}

	if cautions, ok := obj["cautions"].([]interface{}); ok {
		for _, raw := range cautions {
			if raw == nil {
				continue
			}
			report.Cautions = append(report.Cautions, stringify(raw))
		}
	}

	return report
}

func normalizeFinding(f map[string]interface{}) domain.SimplifiedFinding {
	name, _ := coerce(f["name"])
	explanation, _ := coerce(f["explanation"])
	finding := domain.SimplifiedFinding{
		Name:        name,
		Explanation: explanation,
	}
	if v, ok := coerce(f["value"]); ok {
		finding.Value = &v
	}
	if s, ok := coerce(f["status"]); ok {
		finding.Status = &s
	}
	return finding
}

// coerce stringifies v, reporting false for the falsy values null, "", 0 and false.
func coerce(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case bool:
		if !t {
			return "", false
		}
	case float64:
		if t == 0 {
			return "", false
		}
	}
	return stringify(v), true
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
