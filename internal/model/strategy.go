package model

import "fmt"

// Strategy selects which scoring variant a scan applies.
type Strategy string

const (
	StrategyOrderBlock  Strategy = "ob_detection"
	StrategyVCPBreakout Strategy = "vcp_breakout"
)

// ParseStrategy validates a strategy selector. Unknown selectors are a
// caller error, not a silent zero-score variant.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyOrderBlock, StrategyVCPBreakout:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q (want %s or %s)", s, StrategyOrderBlock, StrategyVCPBreakout)
}
