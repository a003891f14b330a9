package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeFenceRe  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	bulletRe     = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
)

type synthesisPayload struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// ParseSynthesis extracts {summary, key_points} from a model response.
// Models wrap JSON in prose and code fences more often than not, so parsing
// is tiered: fenced JSON, any JSON object in the text, then a bullet-list
// scrape of the raw reply. Errors only when nothing usable is found.
func ParseSynthesis(raw string) (string, []string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, fmt.Errorf("empty response")
	}

	candidates := []string{raw}
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		candidates = append([]string{m[1]}, candidates...)
	}
	if m := jsonObjectRe.FindString(raw); m != "" {
		candidates = append(candidates, m)
	}

	for _, c := range candidates {
		var payload synthesisPayload
		if err := json.Unmarshal([]byte(strings.TrimSpace(c)), &payload); err != nil {
			continue
		}
		if payload.Summary != "" || len(payload.KeyPoints) > 0 {
			return payload.Summary, payload.KeyPoints, nil
		}
	}

	// Last resort: treat leading prose as summary, bullets as key points.
	points := scrapeBullets(raw)
	if len(points) == 0 {
		return "", nil, fmt.Errorf("no structured content in response")
	}
	summary := strings.TrimSpace(strings.SplitN(raw, "\n", 2)[0])
	if bulletRe.MatchString(summary) {
		summary = ""
	}
	return summary, points, nil
}

func scrapeBullets(raw string) []string {
	var points []string
	for _, m := range bulletRe.FindAllStringSubmatch(raw, -1) {
		point := strings.TrimSpace(m[1])
		if point != "" {
			points = append(points, point)
		}
	}
	return points
}
