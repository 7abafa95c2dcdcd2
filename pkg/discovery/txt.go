package discovery

import (
	"sort"
	"strings"
)

// parseTXT splits "key=value" TXT records into a map. Records without
// an equals sign, and empty keys, are ignored.
func parseTXT(records []string) map[string]string {
	meta := make(map[string]string, len(records))
	for _, record := range records {
		key, value, ok := strings.Cut(record, "=")
		if !ok || key == "" {
			continue
		}
		meta[key] = value
	}
	return meta
}

// formatTXT renders a metadata map as "key=value" TXT records in a
// stable order.
func formatTXT(meta map[string]string) []string {
	records := make([]string, 0, len(meta))
	for key, value := range meta {
		if key == "" {
			continue
		}
		records = append(records, key+"="+value)
	}
	sort.Strings(records)
	return records
}
