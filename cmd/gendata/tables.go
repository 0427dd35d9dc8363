package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/model"
)

func generateTypeChart(outDir string, sep rune) error {
	chart := data.CanonicalTypeChart()

	header := []string{"Attack Type"}
	for _, t := range model.AllTypes() {
		header = append(header, t.String())
	}
	records := [][]string{header}
	for _, att := range model.AllTypes() {
		rec := []string{att.String()}
		for _, def := range model.AllTypes() {
			rec = append(rec, formatFactor(chart.Multiplier(att, def)))
		}
		records = append(records, rec)
	}

	path := filepath.Join(outDir, data.StatsDir, data.TypeChartFileName)
	if err := writeCSV(path, sep, records); err != nil {
		return err
	}
	fmt.Printf("  %s: %d attacking types\n", path, len(records)-1)
	return nil
}

func generateNatures(outDir string, sep rune) error {
	header := []string{"Nature"}
	for _, st := range model.AllStats() {
		header = append(header, st.Column())
	}
	records := [][]string{header}
	for _, n := range data.CanonicalNatures() {
		rec := []string{n.Name}
		for _, st := range model.AllStats() {
			rec = append(rec, formatFactor(n.Factor(st)))
		}
		records = append(records, rec)
	}

	path := filepath.Join(outDir, data.StatsDir, data.NaturesFileName)
	if err := writeCSV(path, sep, records); err != nil {
		return err
	}
	fmt.Printf("  %s: %d natures\n", path, len(records)-1)
	return nil
}

// formatFactor keeps one decimal for whole numbers: 1 -> "1.0", 0.25 -> "0.25".
func formatFactor(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func writeCSV(path string, sep rune, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = sep
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
