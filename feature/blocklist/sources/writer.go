package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"fediblock-sync/feature/blocklist/models"
)

// WriteCSV writes entries in the canonical column order, sorted by domain
// ascending. Entries without a domain are skipped; their count is reported
// as the returned error after every valid row has been written.
func WriteCSV(w io.Writer, entries []models.BlockEntry, includePrivate bool) error {
	sorted := make([]models.BlockEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Domain < sorted[j].Domain
	})

	header := []string{"domain", "severity", "public_comment", "reject_media", "reject_reports", "obfuscate"}
	if includePrivate {
		header = []string{"domain", "severity", "private_comment", "public_comment", "reject_media", "reject_reports", "obfuscate"}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	skipped := 0
	for _, e := range sorted {
		if e.Domain == "" {
			skipped++
			continue
		}
		row := []string{e.Domain, e.Severity.String()}
		if includePrivate {
			row = append(row, e.PrivateComment)
		}
		row = append(row,
			e.PublicComment,
			formatBool(e.RejectMedia),
			formatBool(e.RejectReports),
			formatBool(e.Obfuscate),
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if skipped > 0 {
		return fmt.Errorf("skipped %d entries without a domain", skipped)
	}
	return nil
}

// SaveFile writes entries to a CSV file at path.
func SaveFile(path string, entries []models.BlockEntry, includePrivate bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create blocklist file %s: %w", path, err)
	}
	defer f.Close()

	return WriteCSV(f, entries, includePrivate)
}

// IntermediateFilename derives a filesystem-safe CSV filename for a fetched
// source inside dir. URLs become dash-separated names.
func IntermediateFilename(dir, source string) string {
	name := strings.ReplaceAll(source, "/", "-")
	return filepath.Join(dir, name+".csv")
}

// formatBool renders a tri-state flag, keeping unspecified values as empty
// cells so they stay unspecified when read back.
func formatBool(p *bool) string {
	if p == nil {
		return ""
	}
	return strconv.FormatBool(*p)
}
