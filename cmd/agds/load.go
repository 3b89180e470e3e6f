package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/pkg/errors"

	"github.com/MaciejGeldon/agds/lib/asa"
	"github.com/MaciejGeldon/agds/lib/containers"
	"github.com/MaciejGeldon/agds/lib/streamio"
	"github.com/MaciejGeldon/agds/lib/textui"
)

// readLines slurps path one line at a time through a
// streamio.RuneScanner, which logs read progress for large files the
// same way the teacher's bulk-load paths do.
func readLines(ctx context.Context, path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open data file %q", path)
	}
	rs, err := streamio.NewRuneScanner(ctx, fh)
	if err != nil {
		return nil, errors.Wrapf(err, "open data file %q", path)
	}
	defer func() { _ = rs.Close() }()

	var lines []string
	var cur strings.Builder
	for {
		r, _, err := rs.ReadRune()
		if err != nil {
			if err != io.EOF {
				return nil, errors.Wrapf(err, "read data file %q", path)
			}
			break
		}
		if r == '\n' {
			lines = append(lines, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines, nil
}

// loadNumericEngine builds an Engine over float64 keys from path, one
// value per non-blank line, logging each insert at Trace level per
// SPEC_FULL.md A.1 ("Engine-level operations... log at Debug/Trace").
func loadNumericEngine(ctx context.Context, path string) (*asa.Engine[containers.NumericKey[float64]], error) {
	lines, err := readLines(ctx, path)
	if err != nil {
		return nil, err
	}
	var e asa.Engine[containers.NumericKey[float64]]
	var memUse textui.LiveMemUse
	lastReport := time.Now()
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		val, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse numeric value %q", line)
		}
		dlog.Tracef(ctx, "insert %v", val)
		e.Insert(containers.NumericKey[float64]{Val: val})
		if time.Since(lastReport) > textui.LiveMemUseUpdateInterval {
			dlog.Debugf(ctx, "memory: %v", &memUse)
			lastReport = time.Now()
		}
	}
	dlog.Debugf(ctx, "loaded %d distinct value(s) from %q", e.Len(), path)
	return &e, nil
}

// loadStringEngine is loadNumericEngine's string-keyed counterpart.
func loadStringEngine(ctx context.Context, path string) (*asa.Engine[containers.NativeOrdered[string]], error) {
	lines, err := readLines(ctx, path)
	if err != nil {
		return nil, err
	}
	var e asa.Engine[containers.NativeOrdered[string]]
	var memUse textui.LiveMemUse
	lastReport := time.Now()
	for _, line := range lines {
		if line == "" {
			continue
		}
		dlog.Tracef(ctx, "insert %q", line)
		e.Insert(containers.NativeOrdered[string]{Val: line})
		if time.Since(lastReport) > textui.LiveMemUseUpdateInterval {
			dlog.Debugf(ctx, "memory: %v", &memUse)
			lastReport = time.Now()
		}
	}
	dlog.Debugf(ctx, "loaded %d distinct value(s) from %q", e.Len(), path)
	return &e, nil
}
