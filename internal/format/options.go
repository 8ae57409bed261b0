package format

import "fmt"

// Quote selects the preferred string delimiter.
type Quote uint8

const (
	QuotePreserve Quote = iota
	QuoteSingle
	QuoteDouble
)

// ParseQuote reads the config spelling of a quote style.
func ParseQuote(s string) (Quote, error) {
	switch s {
	case "", "preserve":
		return QuotePreserve, nil
	case "single":
		return QuoteSingle, nil
	case "double":
		return QuoteDouble, nil
	}
	return QuotePreserve, fmt.Errorf("invalid quote style %q (expected: single|double|preserve)", s)
}

type Options struct {
	IndentWidth    int
	UseTabs        bool
	Quote          Quote
	TrailingCommas bool
	LineWidth      int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 2
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 100
	}
	return o
}
