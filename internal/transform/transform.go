// Package transform applies the column-level post-processing rules a schema
// declares: anonymization of email-shaped values and timezone conversion of
// timestamps.
//
// Unknown transformation types are skipped rather than rejected. This is a
// deliberate forward-compatibility policy: a schema written for a newer
// dataloom keeps loading on an older one. Each skipped entry is logged at
// WARN so typos do not go unnoticed.
package transform

import (
	"crypto/md5" //nolint:gosec // opaque one-way string map, not a security boundary
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

// Apply runs the declared transformations in order, one pass per entry, each
// mutating exactly one named column of the table in place.
func Apply(t *dataset.Table, transformations []dataset.Transformation, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, tr := range transformations {
		switch tr.Type {
		case "anonymize":
			if err := anonymize(t, tr.Params); err != nil {
				return err
			}
		case "convert_timezone":
			if err := convertTimezone(t, tr.Params); err != nil {
				return err
			}
		default:
			logger.Warn("ignoring unknown transformation", slog.String("type", tr.Type))
		}
	}
	return nil
}

type anonymizeParams struct {
	Column string `mapstructure:"column"`
}

type timezoneParams struct {
	Column string `mapstructure:"column"`
	To     string `mapstructure:"to"`
}

// anonymize replaces the local part of email-shaped string values with its
// one-way hash, keeping the domain: alice@example.com becomes
// <hash(alice)>@example.com. Non-strings and values without an @ pass
// through unchanged.
func anonymize(t *dataset.Table, params map[string]any) error {
	var p anonymizeParams
	if err := mapstructure.Decode(params, &p); err != nil {
		return fmt.Errorf("anonymize: invalid params: %w", err)
	}

	idx, ok := t.ColumnIndex(p.Column)
	if !ok {
		return fmt.Errorf("anonymize: column %q not found", p.Column)
	}

	for _, row := range t.Rows {
		s, ok := row[idx].(string)
		if !ok {
			continue
		}
		at := strings.LastIndex(s, "@")
		if at < 0 {
			continue
		}
		row[idx] = hashString(s[:at]) + "@" + s[at+1:]
	}
	return nil
}

// hashString is the deterministic one-way map used by anonymize. Equal
// inputs must keep hashing to equal outputs across releases so repeated
// loads of one dataset stay consistent; cryptographic strength is
// irrelevant here.
func hashString(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// timeLayouts are tried in order when a timestamp arrives as a string.
// Layouts without a zone are interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// convertTimezone converts the column's timestamps to the target location
// named in params.to. Unparseable values fail the load; they are not
// silently passed through.
func convertTimezone(t *dataset.Table, params map[string]any) error {
	var p timezoneParams
	if err := mapstructure.Decode(params, &p); err != nil {
		return fmt.Errorf("convert_timezone: invalid params: %w", err)
	}

	idx, ok := t.ColumnIndex(p.Column)
	if !ok {
		return fmt.Errorf("convert_timezone: column %q not found", p.Column)
	}

	loc, err := time.LoadLocation(p.To)
	if err != nil {
		return fmt.Errorf("convert_timezone: unknown timezone %q: %w", p.To, err)
	}

	for i, row := range t.Rows {
		switch v := row[idx].(type) {
		case nil:
			continue
		case time.Time:
			row[idx] = v.In(loc)
		case string:
			ts, err := parseTimestamp(v)
			if err != nil {
				return fmt.Errorf("convert_timezone: row %d, column %q: %w", i, p.Column, err)
			}
			row[idx] = ts.In(loc).Format(time.RFC3339)
		default:
			return fmt.Errorf("convert_timezone: row %d, column %q: cannot convert value of type %T", i, p.Column, v)
		}
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a timestamp", s)
}
