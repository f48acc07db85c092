package report

import "encoding/json"

// Normalize builds a fully-defaulted Report from an arbitrary detector
// payload. It returns ok=false only when the payload is absent or JSON null,
// meaning no report exists yet. Everything else yields a usable Report: the
// detection service is an independently deployed, still-evolving system, so
// unknown or missing fields degrade to defaults instead of failing the view.
func Normalize(raw json.RawMessage) (Report, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return Report{}, false
	}

	var top map[string]any
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return Report{
			AILikelihood:  LikelihoodLow,
			OnlineSources: []Source{},
		}, true
	}
	return fromMap(top), true
}

func fromMap(top map[string]any) Report {
	rep := Report{
		AILikelihood:  ParseLikelihood(stringField(top, "ai_likelihood")),
		Reasoning:     stringField(top, "ai_reasoning"),
		OnlineSources: sourcesField(top, "online_sources"),
	}

	// An explicit count is trusted even when it disagrees with the source
	// list; the detector may report a count without full source detail.
	if count, ok := intField(top, "online_sources_count"); ok {
		rep.OnlineSourcesCount = count
	} else {
		rep.OnlineSourcesCount = len(rep.OnlineSources)
	}
	return rep
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func sourcesField(m map[string]any, key string) []Source {
	items, ok := m[key].([]any)
	if !ok {
		return []Source{}
	}
	out := make([]Source, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		src := Source{
			URL:     stringField(entry, "url"),
			Title:   stringField(entry, "title"),
			Snippet: stringField(entry, "snippet"),
		}
		// A source without a URL isn't citable evidence.
		if src.URL == "" {
			continue
		}
		out = append(out, src)
	}
	return out
}
