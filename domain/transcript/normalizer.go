package transcript

import "strings"

// NormalizeSpeakers canonicalizes speaker labels across a dialogue sequence
// so that short-form mentions resolve to the full name seen earlier.
//
// A speaker with two or more words is authoritative: its last two words and
// its last word alone are registered (uppercased) as aliases for the full
// form. A single-word speaker resolves through the alias map when possible
// and otherwise passes through unchanged (e.g. "NARRATION").
//
// The pass is forward-only: a surname can only resolve if the full form
// appeared earlier. When two multi-word speakers share a last word, the
// later registration overwrites the earlier alias; subsequent surname-only
// mentions then resolve to the later speaker.
func NormalizeSpeakers(entries []Entry) []Entry {
	aliases := make(map[string]string)
	out := make([]Entry, 0, len(entries))

	for _, e := range entries {
		words := strings.Fields(e.Speaker)
		speaker := strings.Join(words, " ")

		switch {
		case len(words) >= 2:
			lastTwo := strings.Join(words[len(words)-2:], " ")
			aliases[strings.ToUpper(lastTwo)] = speaker
			aliases[strings.ToUpper(words[len(words)-1])] = speaker
			out = append(out, Entry{Speaker: speaker, Text: e.Text})
		case len(words) == 1:
			if full, ok := aliases[strings.ToUpper(words[0])]; ok {
				out = append(out, Entry{Speaker: full, Text: e.Text})
			} else {
				out = append(out, Entry{Speaker: speaker, Text: e.Text})
			}
		default:
			out = append(out, Entry{Speaker: speaker, Text: e.Text})
		}
	}

	return out
}
