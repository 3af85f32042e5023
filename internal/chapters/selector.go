package chapters

import (
	"strconv"
	"strings"
)

// Filter picks chapters by label or 1-based index, by index range ("5-12")
// or by index list ("1,3,5"). With no selector every chapter is returned.
func Filter(all []Chapter, chapter, rng, list string) []Chapter {
	if chapter != "" {
		if byLabel := FilterByLabel(all, chapter); len(byLabel) > 0 {
			return byLabel
		}
		if idx, err := atoi(chapter); err == nil && idx > 0 && idx <= len(all) {
			return []Chapter{all[idx-1]}
		}
		return []Chapter{}
	}
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

func FilterByLabel(all []Chapter, label string) []Chapter {
	var out []Chapter
	for _, ch := range all {
		if ch.Label == label {
			out = append(out, ch)
		}
	}

	return out
}

func FilterRange(all []Chapter, rng string) []Chapter {
	start, end, ok := strings.Cut(rng, "-")
	if !ok {
		return nil
	}

	from, err1 := atoi(start)
	to, err2 := atoi(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	if from <= 0 || to <= 0 || from > to || to > len(all) {
		return nil
	}

	return all[from-1 : to]
}

func FilterList(all []Chapter, list string) []Chapter {
	out := []Chapter{}
	for n := range strings.SplitSeq(list, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		idx, err := atoi(n)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}

		out = append(out, all[idx-1])
	}

	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
