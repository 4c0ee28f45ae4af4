package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMissingKey is returned when a required field is absent from the payload.
	ErrMissingKey = errors.New("missing key in weather response")
	// ErrInvalidValue is returned when a field cannot be converted.
	ErrInvalidValue = errors.New("invalid value in weather response")
)

type conversion int

const (
	convertVerbatim conversion = iota
	convertConditionText
	convertWindSpeed
	convertWindDirection
)

// Field maps one key of the "current" object to its report label.
type Field struct {
	Key   string
	Label string
	conv  conversion
}

// Fields is the fixed, ordered list of report lines.
var Fields = []Field{
	{Key: "temp_c", Label: "Температура, С"},
	{Key: "feelslike_c", Label: "Ощущается, С"},
	{Key: "wind_kph", Label: "Ветер, м/с", conv: convertWindSpeed},
	{Key: "gust_kph", Label: "Порывы, м/с", conv: convertWindSpeed},
	{Key: "cloud", Label: "Облачность, %"},
	{Key: "condition", Label: "Явления", conv: convertConditionText},
	{Key: "wind_dir", Label: "Направление ветра", conv: convertWindDirection},
	{Key: "wind_degree", Label: "Направление ветра, гр"},
	{Key: "precip_mm", Label: "Осадки, мм/ч"},
	{Key: "vis_km", Label: "Видимость, км"},
	{Key: "pressure_mb", Label: "Давление, мБ"},
	{Key: "humidity", Label: "Влажность, %"},
}

// Entry is a single rendered report line.
type Entry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is an ordered list of entries, in Fields order.
type Report []Entry

// Render joins the report into "<label>: <value>" lines.
func (r Report) Render() string {
	lines := make([]string, 0, len(r))
	for _, e := range r {
		lines = append(lines, e.Label+": "+e.Value)
	}
	return strings.Join(lines, "\n")
}

// BuildReport converts a raw provider response into a Report. It never
// returns a partial report: any missing or malformed field aborts the build.
func BuildReport(raw RawResponse) (Report, error) {
	current, ok := raw["current"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: current", ErrMissingKey)
	}

	report := make(Report, 0, len(Fields))
	for _, f := range Fields {
		v, ok := current[f.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, f.Key)
		}
		value, err := f.convert(v)
		if err != nil {
			return nil, err
		}
		report = append(report, Entry{Label: f.Label, Value: value})
	}
	return report, nil
}

func (f Field) convert(v any) (string, error) {
	switch f.conv {
	case convertConditionText:
		cond, ok := v.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s is not an object", ErrInvalidValue, f.Key)
		}
		text, ok := cond["text"]
		if !ok {
			return "", fmt.Errorf("%w: %s.text", ErrMissingKey, f.Key)
		}
		return formatValue(text), nil
	case convertWindSpeed:
		kph, err := toFloat(v)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.Key, err)
		}
		return formatMs(kph), nil
	case convertWindDirection:
		dir, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%w: %s is not a string", ErrInvalidValue, f.Key)
		}
		return TranslateWindDirection(dir), nil
	default:
		return formatValue(v), nil
	}
}

// KmhToMs converts km/h to m/s rounded to one decimal place. Rounding is
// applied to the exact binary value with ties to even, so 4.5 km/h (1.25 m/s)
// becomes 1.2.
func KmhToMs(kph float64) float64 {
	ms, _ := strconv.ParseFloat(formatMs(kph), 64)
	return ms
}

// formatMs renders km/h as m/s with one decimal place.
func formatMs(kph float64) string {
	return strconv.FormatFloat(kph*1000/3600, 'f', 1, 64)
}

var compassReplacer = strings.NewReplacer(
	"W", "З",
	"E", "В",
	"S", "Ю",
	"N", "С",
)

// TranslateWindDirection replaces each compass letter independently,
// so "NE" becomes "СВ". Unknown characters are left as is.
func TranslateWindDirection(dir string) string {
	return compassReplacer.Replace(dir)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
