package param

import (
	"strconv"
	"strings"
)

// TimeOfDay is an hour and minute with no date and no zone attached.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats t as H:MM after carrying a single minute overflow.
func (t TimeOfDay) String() string {
	n := t.carry()
	return strconv.Itoa(n.Hour) + ":" + pad2(n.Minute)
}

// carry folds one 60-minute overflow into the hour. Larger overflows are
// left as they are.
func (t TimeOfDay) carry() TimeOfDay {
	if extra := t.Minute - 60; extra >= 0 {
		return TimeOfDay{Hour: t.Hour + 1, Minute: extra}
	}
	return t
}

// ParseTimeOfDay splits raw on ':' and parses each part, using 0 for any
// part that is missing or not a number.
func ParseTimeOfDay(raw string) TimeOfDay {
	parts := strings.Split(raw, ":")
	t := TimeOfDay{Hour: atoiOrZero(parts[0])}
	if len(parts) > 1 {
		t.Minute = atoiOrZero(parts[1])
	}
	return t
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
