package pattern

import (
	"math"
	"reflect"
	"testing"
	"time"

	"StockRadar/internal/model"
)

func day(i int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func flatBar(i int, price float64) model.Bar {
	return model.Bar{Date: day(i), Open: price, High: price, Low: price, Close: price, Volume: 1_000_000}
}

// flatThenRally builds 44 flat bars at 100, a swing-low dip at index 44,
// then a five-bar rally whose third close sits 15% above the dip low.
func flatThenRally() model.Series {
	s := make(model.Series, 0, 50)
	for i := 0; i < 44; i++ {
		s = append(s, flatBar(i, 100))
	}
	s = append(s, model.Bar{Date: day(44), Open: 100, High: 100, Low: 99.8, Close: 100, Volume: 1_000_000})
	closes := []float64{105, 110, 114.77, 115, 115.2}
	for i, c := range closes {
		s = append(s, model.Bar{Date: day(45 + i), Open: c - 1, High: c + 0.5, Low: c - 2, Close: c, Volume: 1_500_000})
	}
	return s
}

func TestDetectOrderBlocks_FlatThenRally(t *testing.T) {
	blocks := DetectOrderBlocks(flatThenRally())
	if len(blocks) != 1 {
		t.Fatalf("expected exactly 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Type != model.BlockBullish {
		t.Errorf("expected bullish block, got %s", b.Type)
	}
	if math.Abs(b.Strength-15.0) > 0.1 {
		t.Errorf("expected strength ~15.0, got %.3f", b.Strength)
	}
	if b.IsMitigated {
		t.Error("no later bar breaks the bottom, block must be unmitigated")
	}
	if b.Bottom != 99.8 || b.Top != 100 {
		t.Errorf("expected zone [99.8, 100], got [%.2f, %.2f]", b.Bottom, b.Top)
	}
	if !b.StartTime.Equal(day(44)) {
		t.Errorf("expected origin %v, got %v", day(44), b.StartTime)
	}
}

func TestDetectOrderBlocks_MitigationMonotonic(t *testing.T) {
	s := flatThenRally()
	if got := DetectOrderBlocks(s); got[0].IsMitigated {
		t.Fatal("block mitigated before any breach")
	}

	// A later low under the bottom mitigates the block.
	s = append(s, model.Bar{Date: day(50), Open: 110, High: 111, Low: 99.5, Close: 105, Volume: 1_000_000})
	blocks := DetectOrderBlocks(s)
	if len(blocks) == 0 || !blocks[0].IsMitigated {
		t.Fatal("expected block mitigated after a low under its bottom")
	}

	// Appending more bars never un-mitigates it.
	s = append(s, model.Bar{Date: day(51), Open: 105, High: 112, Low: 104, Close: 111, Volume: 1_000_000})
	blocks = DetectOrderBlocks(s)
	if len(blocks) == 0 || !blocks[0].IsMitigated {
		t.Fatal("mitigation must stay true once a breach exists")
	}
}

func TestDetectOrderBlocks_Bearish(t *testing.T) {
	s := make(model.Series, 0, 50)
	for i := 0; i < 44; i++ {
		s = append(s, flatBar(i, 100))
	}
	// Swing high at index 44, then a sell-off closing 15% under its low.
	s = append(s, model.Bar{Date: day(44), Open: 100, High: 100.5, Low: 100, Close: 100, Volume: 1_000_000})
	closes := []float64{95, 90, 85, 84.5, 84}
	for i, c := range closes {
		s = append(s, model.Bar{Date: day(45 + i), Open: c + 1, High: c + 2, Low: c - 0.5, Close: c, Volume: 1_500_000})
	}

	blocks := DetectOrderBlocks(s)
	if len(blocks) != 1 {
		t.Fatalf("expected exactly 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Type != model.BlockBearish {
		t.Fatalf("expected bearish block, got %s", b.Type)
	}
	if b.Top != 100.5 || b.Bottom != 100 {
		t.Errorf("expected zone [100, 100.5], got [%.2f, %.2f]", b.Bottom, b.Top)
	}
	if b.IsMitigated {
		t.Error("no later high exceeds the top, block must be unmitigated")
	}
}

func TestDetectOrderBlocks_TopNeverBelowBottom(t *testing.T) {
	// Deterministic jagged series to shake out plenty of swings.
	s := make(model.Series, 0, 120)
	price := 100.0
	for i := 0; i < 120; i++ {
		step := float64((i*37)%13) - 6
		price += step * 0.4
		s = append(s, model.Bar{
			Date:   day(i),
			Open:   price - 0.3,
			High:   price + float64((i*11)%5)*0.5,
			Low:    price - float64((i*7)%5)*0.5,
			Close:  price,
			Volume: 1_000_000 + float64((i*101)%7)*100_000,
		})
	}
	for _, b := range DetectOrderBlocks(s) {
		if b.Top < b.Bottom {
			t.Fatalf("block with top %.2f < bottom %.2f", b.Top, b.Bottom)
		}
	}
}

func TestDetectOrderBlocks_ShortSeries(t *testing.T) {
	s := make(model.Series, 0, 25)
	for i := 0; i < 25; i++ {
		s = append(s, flatBar(i, 100))
	}
	if got := DetectOrderBlocks(s); got != nil {
		t.Fatalf("expected no blocks for a 25-bar series, got %d", len(got))
	}
}

func TestDetectOrderBlocks_Idempotent(t *testing.T) {
	s := flatThenRally()
	first := DetectOrderBlocks(s)
	second := DetectOrderBlocks(s)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("detection on the identical series must yield identical output")
	}
}
