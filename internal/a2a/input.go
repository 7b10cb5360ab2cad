package a2a

import (
	"encoding/json"
	"strings"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/form"
)

// extractInput finds the niche and location in a message. A data part with
// {"niche", "location"} wins; otherwise text is parsed as "niche | location"
// or as "niche: ..." / "location: ..." lines. Conversation-history data parts
// contribute their most recent user text.
func extractInput(msg A2AMessage) form.Input {
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case KindData:
			if len(part.Data) == 0 {
				continue
			}
			var in form.Input
			if err := json.Unmarshal(part.Data, &in); err == nil && (in.Niche != "" || in.Location != "") {
				return in.Normalize()
			}
			if text := lastHistoryText(part.Data); text != "" {
				texts = append(texts, text)
			}
		case KindText:
			if t := strings.TrimSpace(part.Text); t != "" {
				texts = append(texts, t)
			}
		}
	}

	return parseText(strings.Join(texts, "\n"))
}

// lastHistoryText returns the newest text item of a history array, skipping
// progress chatter emitted by agents.
func lastHistoryText(data json.RawMessage) string {
	var history []MessagePart
	if err := json.Unmarshal(data, &history); err != nil {
		return ""
	}
	for i := len(history) - 1; i >= 0; i-- {
		item := history[i]
		if item.Kind != KindText {
			continue
		}
		text := strings.TrimSpace(strings.NewReplacer("<p>", "", "</p>", "").Replace(item.Text))
		lower := strings.ToLower(text)
		if text == "" || strings.Trim(text, ".") == "" ||
			strings.Contains(lower, "generating") || strings.Contains(lower, "creating") {
			continue
		}
		return text
	}
	return ""
}

func parseText(text string) form.Input {
	var in form.Input

	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "niche", "niche/product", "product":
			in.Niche = value
		case "location", "city/state", "city":
			in.Location = value
		}
	}
	if in.Niche != "" || in.Location != "" {
		return in.Normalize()
	}

	if niche, location, ok := strings.Cut(text, "|"); ok {
		return form.Input{Niche: niche, Location: location}.Normalize()
	}
	return form.Input{Niche: text}.Normalize()
}
