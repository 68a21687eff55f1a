// Package rulecache memoizes recurrence rule parsing. Rule text repeats
// heavily across events and across repeated expansions of the same
// calendar, so the parsed options are kept in a bounded LRU.
package rulecache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/teambition/rrule-go"
)

const cacheSize = 512

var options *lru.Cache[string, rrule.ROption]

func init() {
	// New only fails for a non-positive size.
	options, _ = lru.New[string, rrule.ROption](cacheSize)
}

// Compile parses rule text (an RRULE/EXRULE value without the property
// prefix) and anchors it at the given start instant. Parsing is cached;
// anchoring happens per call, so the same text can serve any anchor.
func Compile(text string, anchor time.Time) (*rrule.RRule, error) {
	opt, ok := options.Get(text)
	if !ok {
		parsed, err := rrule.StrToROption(text)
		if err != nil {
			return nil, fmt.Errorf("parse recurrence rule %q: %w", text, err)
		}
		opt = *parsed
		options.Add(text, opt)
	}
	opt.Dtstart = anchor
	return rrule.NewRRule(opt)
}
