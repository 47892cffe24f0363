package dialogue

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"dinebook/pkg/datetime"
)

// Each parser maps one transcript to a field value. ok=false means the
// transcript held nothing usable and the field keeps its previous value.

var (
	reDigits   = regexp.MustCompile(`\d+`)
	reClock    = regexp.MustCompile(`(\d{1,2})(?:[:.]\s?(\d{2})|\s(\d{2})\b)?\s*(am|pm)?`)
	reDottedAM = regexp.MustCompile(`\b([ap])\.\s?m\.?`)
	reNumWord  = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\b`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// Cuisines is checked in order; the first one mentioned wins.
var Cuisines = []string{"Indian", "Italian", "Chinese", "Mexican", "Thai"}

// ParseName capitalises the first letter of every word.
func ParseName(transcript string) (string, bool) {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return "", false
	}
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " "), true
}

// ParseGuests takes the first run of digits, falling back to a spelled-out
// number up to twelve.
func ParseGuests(transcript string) (int, bool) {
	lower := strings.ToLower(transcript)
	if m := reDigits.FindString(lower); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	if m := reNumWord.FindString(lower); m != "" {
		return numberWords[m], true
	}
	return 0, false
}

// ParseDate returns the spoken date as YYYY-MM-DD.
func ParseDate(transcript string) (string, bool) {
	d, err := datetime.ParseDate(transcript)
	if err != nil {
		return "", false
	}
	return datetime.FormatDate(d), true
}

// ParseTime turns "8 pm", "8:30 p.m." or "20 00" into a 24-hour HH:MM.
func ParseTime(transcript string) (string, bool) {
	lower := reDottedAM.ReplaceAllString(strings.ToLower(transcript), "${1}m")

	m := reClock.FindStringSubmatch(lower)
	if m == nil {
		return "", false
	}

	hour, _ := strconv.Atoi(m[1])
	minutes := 0
	if mm := m[2] + m[3]; mm != "" {
		minutes, _ = strconv.Atoi(mm)
	}

	switch m[4] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minutes > 59 {
		return "", false
	}
	return pad2(hour) + ":" + pad2(minutes), true
}

// ParseCuisine matches the fixed cuisine list case-insensitively.
func ParseCuisine(transcript string) (string, bool) {
	lower := strings.ToLower(transcript)
	for _, c := range Cuisines {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}

// ParseText keeps free text as spoken, trimmed.
func ParseText(transcript string) (string, bool) {
	t := strings.TrimSpace(transcript)
	return t, t != ""
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
