package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// SpeedLimitsSheet is the worksheet holding the dataset
const SpeedLimitsSheet = "SpeedLimits"

// ErrSpeedLimitsNotLoaded is returned when no dataset has been loaded yet
var ErrSpeedLimitsNotLoaded = errors.New("speed limits dataset not loaded")

var speedLimitHeaders = []string{"Zone", "Overspeed from (km/h)", "Measure", "Fine (CHF)"}

// SpeedLimitRule is one row of the dataset: the consequence of exceeding the
// limit in Zone by at least OverspeedFrom km/h
type SpeedLimitRule struct {
	Zone          string
	OverspeedFrom int
	Measure       string
	FineCHF       int // 0 when the case goes to criminal proceedings
}

// SpeedLimitTable indexes rules by zone and threshold
type SpeedLimitTable struct {
	zones map[string][]SpeedLimitRule
	order []string
}

// NewSpeedLimitTable builds a table; rules for a zone are sorted by threshold
func NewSpeedLimitTable(rules []SpeedLimitRule) *SpeedLimitTable {
	t := &SpeedLimitTable{zones: make(map[string][]SpeedLimitRule)}
	for _, r := range rules {
		key := zoneKey(r.Zone)
		if _, ok := t.zones[key]; !ok {
			t.order = append(t.order, r.Zone)
		}
		t.zones[key] = append(t.zones[key], r)
	}
	for _, zr := range t.zones {
		sort.SliceStable(zr, func(i, j int) bool { return zr[i].OverspeedFrom < zr[j].OverspeedFrom })
	}
	return t
}

func zoneKey(zone string) string {
	return strings.ToLower(strings.TrimSpace(zone))
}

// Lookup returns the rule with the highest threshold not above overspeed
func (t *SpeedLimitTable) Lookup(zone string, overspeed int) (SpeedLimitRule, bool) {
	rules := t.zones[zoneKey(zone)]
	// first rule whose threshold exceeds overspeed
	i := sort.Search(len(rules), func(i int) bool { return rules[i].OverspeedFrom > overspeed })
	if i == 0 {
		return SpeedLimitRule{}, false
	}
	return rules[i-1], true
}

// Zones lists the zones in dataset order
func (t *SpeedLimitTable) Zones() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of rules
func (t *SpeedLimitTable) Len() int {
	n := 0
	for _, rules := range t.zones {
		n += len(rules)
	}
	return n
}

// ParseSpeedLimits reads the SpeedLimits sheet of a workbook
func ParseSpeedLimits(r io.Reader) (*SpeedLimitTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SpeedLimitsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", SpeedLimitsSheet, err)
	}

	var rules []SpeedLimitRule
	for i, row := range rows {
		if i == 0 {
			continue
		} // Header
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		threshold, err := parseSheetInt(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid overspeed %q", i+1, row[1])
		}

		rule := SpeedLimitRule{
			Zone:          strings.TrimSpace(row[0]),
			OverspeedFrom: threshold,
		}
		if len(row) > 2 {
			rule.Measure = strings.TrimSpace(row[2])
		}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			fine, err := parseSheetInt(row[3])
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid fine %q", i+1, row[3])
			}
			rule.FineCHF = fine
		}
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("%s sheet has no rows", SpeedLimitsSheet)
	}

	return NewSpeedLimitTable(rules), nil
}

func parseSheetInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// GenerateSpeedLimitWorkbook writes rules into a workbook in the layout ParseSpeedLimits reads
func GenerateSpeedLimitWorkbook(rules []SpeedLimitRule) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SpeedLimitsSheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range speedLimitHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SpeedLimitsSheet, cell, h)
	}
	f.SetCellStyle(SpeedLimitsSheet, "A1", "D1", headerStyle)

	for i, r := range rules {
		row := i + 2
		f.SetCellValue(SpeedLimitsSheet, fmt.Sprintf("A%d", row), r.Zone)
		f.SetCellValue(SpeedLimitsSheet, fmt.Sprintf("B%d", row), r.OverspeedFrom)
		f.SetCellValue(SpeedLimitsSheet, fmt.Sprintf("C%d", row), r.Measure)
		if r.FineCHF > 0 {
			f.SetCellValue(SpeedLimitsSheet, fmt.Sprintf("D%d", row), r.FineCHF)
		}
	}
	f.SetColWidth(SpeedLimitsSheet, "A", "A", 14)
	f.SetColWidth(SpeedLimitsSheet, "B", "B", 22)
	f.SetColWidth(SpeedLimitsSheet, "C", "C", 60)
	f.SetColWidth(SpeedLimitsSheet, "D", "D", 12)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// DefaultSpeedLimitRules is the Swiss sample dataset (fines per OBV, measures per SVG)
var DefaultSpeedLimitRules = []SpeedLimitRule{
	{Zone: "Innerorts", OverspeedFrom: 1, Measure: "Ordnungsbusse", FineCHF: 40},
	{Zone: "Innerorts", OverspeedFrom: 6, Measure: "Ordnungsbusse", FineCHF: 120},
	{Zone: "Innerorts", OverspeedFrom: 11, Measure: "Ordnungsbusse", FineCHF: 250},
	{Zone: "Innerorts", OverspeedFrom: 16, Measure: "Verzeigung, Verwarnung oder Ausweisentzug 1 Monat"},
	{Zone: "Innerorts", OverspeedFrom: 21, Measure: "Mittelschwere Widerhandlung, Ausweisentzug mind. 1 Monat"},
	{Zone: "Innerorts", OverspeedFrom: 25, Measure: "Schwere Widerhandlung, Ausweisentzug mind. 3 Monate"},
	{Zone: "Innerorts", OverspeedFrom: 50, Measure: "Raserdelikt, Freiheitsstrafe 1-4 Jahre, Ausweisentzug mind. 24 Monate"},
	{Zone: "Ausserorts", OverspeedFrom: 1, Measure: "Ordnungsbusse", FineCHF: 40},
	{Zone: "Ausserorts", OverspeedFrom: 6, Measure: "Ordnungsbusse", FineCHF: 100},
	{Zone: "Ausserorts", OverspeedFrom: 11, Measure: "Ordnungsbusse", FineCHF: 160},
	{Zone: "Ausserorts", OverspeedFrom: 16, Measure: "Ordnungsbusse", FineCHF: 240},
	{Zone: "Ausserorts", OverspeedFrom: 21, Measure: "Verzeigung, Verwarnung oder Ausweisentzug 1 Monat"},
	{Zone: "Ausserorts", OverspeedFrom: 26, Measure: "Mittelschwere Widerhandlung, Ausweisentzug mind. 1 Monat"},
	{Zone: "Ausserorts", OverspeedFrom: 30, Measure: "Schwere Widerhandlung, Ausweisentzug mind. 3 Monate"},
	{Zone: "Ausserorts", OverspeedFrom: 60, Measure: "Raserdelikt, Freiheitsstrafe 1-4 Jahre, Ausweisentzug mind. 24 Monate"},
	{Zone: "Autobahn", OverspeedFrom: 1, Measure: "Ordnungsbusse", FineCHF: 20},
	{Zone: "Autobahn", OverspeedFrom: 6, Measure: "Ordnungsbusse", FineCHF: 60},
	{Zone: "Autobahn", OverspeedFrom: 11, Measure: "Ordnungsbusse", FineCHF: 120},
	{Zone: "Autobahn", OverspeedFrom: 16, Measure: "Ordnungsbusse", FineCHF: 180},
	{Zone: "Autobahn", OverspeedFrom: 21, Measure: "Ordnungsbusse", FineCHF: 260},
	{Zone: "Autobahn", OverspeedFrom: 26, Measure: "Verzeigung, Verwarnung oder Ausweisentzug 1 Monat"},
	{Zone: "Autobahn", OverspeedFrom: 31, Measure: "Mittelschwere Widerhandlung, Ausweisentzug mind. 1 Monat"},
	{Zone: "Autobahn", OverspeedFrom: 35, Measure: "Schwere Widerhandlung, Ausweisentzug mind. 3 Monate"},
	{Zone: "Autobahn", OverspeedFrom: 80, Measure: "Raserdelikt, Freiheitsstrafe 1-4 Jahre, Ausweisentzug mind. 24 Monate"},
}

var (
	speedLimitsMu sync.RWMutex
	speedLimits   *SpeedLimitTable
)

// LoadSpeedLimits reads the workbook at key from storage and swaps it in
func LoadSpeedLimits(ctx context.Context, storage StorageProvider, key string) error {
	if storage == nil {
		return fmt.Errorf("storage not initialized")
	}

	reader, _, err := storage.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to fetch speed limits: %w", err)
	}
	defer reader.Close()

	table, err := ParseSpeedLimits(reader)
	if err != nil {
		return err
	}

	SetSpeedLimits(table)
	log.Printf("[INFO] Loaded %d speed limit rules from %s", table.Len(), key)
	return nil
}

// SetSpeedLimits replaces the active dataset; nil unloads it
func SetSpeedLimits(table *SpeedLimitTable) {
	speedLimitsMu.Lock()
	defer speedLimitsMu.Unlock()
	speedLimits = table
}

// CurrentSpeedLimits returns the active dataset
func CurrentSpeedLimits() (*SpeedLimitTable, error) {
	speedLimitsMu.RLock()
	defer speedLimitsMu.RUnlock()
	if speedLimits == nil {
		return nil, ErrSpeedLimitsNotLoaded
	}
	return speedLimits, nil
}
