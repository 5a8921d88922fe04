package domain

import "fmt"

// TieBreak - что делать с точкой, попавшей в несколько полигонов (например, на общей границе)
type TieBreak string

const (
	// TieBreakExclude - точка не учитывается ни в одной области
	TieBreakExclude TieBreak = "exclude"
	// TieBreakFirst - точка достается первой области в порядке слоя
	TieBreakFirst TieBreak = "first"
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch t := TieBreak(s); t {
	case TieBreakExclude, TieBreakFirst:
		return t, nil
	case "":
		return TieBreakExclude, nil
	default:
		return "", fmt.Errorf("unknown tie break policy %q", s)
	}
}

// AreaCount - количество самокатов в области
type AreaCount struct {
	AreaID string `json:"area_id"`
	Count  int    `json:"count"`
}

// AggregateCount - счетчики по всем областям слоя, каждая область ровно один раз, в порядке слоя
type AggregateCount struct {
	Layer     LayerKind   `json:"layer"`
	Counts    []AreaCount `json:"counts"`
	Min       int         `json:"min"`
	Max       int         `json:"max"`
	Matched   int         `json:"matched"`
	Unmatched int         `json:"unmatched"`
	Ambiguous int         `json:"ambiguous"`
}

// AsMap возвращает счетчики в виде area_id -> count
func (a AggregateCount) AsMap() map[string]int {
	m := make(map[string]int, len(a.Counts))
	for _, c := range a.Counts {
		m[c.AreaID] = c.Count
	}
	return m
}
