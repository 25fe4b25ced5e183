// Package export materializes the buffer contents as a downloadable CSV
// table: one row per buffered sample, oldest first, no interpolation or
// resampling.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sensorscope/sensorscope/internal/pkg/store"
)

// TimestampFormat is how sample timestamps are written to the CSV.
const TimestampFormat = "2006-01-02 15:04:05.000"

// Assemble renders a point-in-time snapshot as CSV bytes. Columns are
// timestamp followed by one column per channel; an empty snapshot yields a
// header-only table.
func Assemble(channels []string, samples []store.Sample) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"timestamp"}, channels...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, s := range samples {
		row[0] = s.Timestamp.Format(TimestampFormat)
		for i, v := range s.Values {
			row[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds the download name with a timestamp component.
func Filename(now time.Time) string {
	return fmt.Sprintf("sensor_data_%s.csv", now.Format("20060102_150405"))
}
