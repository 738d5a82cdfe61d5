package bend

import (
	"path/filepath"
	"strings"
)

// machinePrefixLen is the timestamp prefix the machine puts before the part key,
// counted in characters.
const machinePrefixLen = 16

const (
	UnknownPartID = "Unknown"
	UnknownJobNo  = "N/A"
)

// Meta is what the export filename says about the tested part
type Meta struct {
	PartID string `json:"part_id"`
	JobNo  string `json:"job_no"`
}

// ParseFilename extracts part ID and job number from names like
// "20240506_101112_PART1234(567).csv".
func ParseFilename(name string) Meta {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	key := stem
	if runes := []rune(key); len(runes) >= machinePrefixLen {
		key = string(runes[machinePrefixLen:])
	}

	open := strings.Index(key, "(")
	if open < 0 {
		return Meta{PartID: UnknownPartID, JobNo: UnknownJobNo}
	}

	job := key[open+1:]
	if rest := strings.Index(job, "("); rest >= 0 {
		job = job[:rest]
	}
	if len(job) > 0 {
		job = job[:len(job)-1]
	}
	return Meta{PartID: key[:open], JobNo: job}
}
