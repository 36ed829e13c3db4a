package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numberScale is the count of fractional decimal digits an episode number may carry.
const numberScale = 3

// EpisodeNumber identifies an episode. Special episodes sit between whole numbers
// (100.5), so the value is kept as an integer count of thousandths rather than a float.
type EpisodeNumber int64

// ParseEpisodeNumber reads a decimal string such as "100" or "100.5".
func ParseEpisodeNumber(s string) (EpisodeNumber, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("episode number is empty")
	}
	if strings.ContainsAny(s, "eE") {
		return 0, fmt.Errorf("invalid episode number %q: exponent notation is not supported", s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid episode number %q: expected a decimal number", s)
	}

	scaled := d.Shift(numberScale)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("invalid episode number %q: at most %d decimal places are allowed", s, numberScale)
	}
	if scaled.Abs().GreaterThan(decimal.NewFromInt(1 << 53)) {
		return 0, fmt.Errorf("invalid episode number %q: out of range", s)
	}
	return EpisodeNumber(scaled.IntPart()), nil
}

// MustEpisodeNumber is ParseEpisodeNumber for literals known to be valid.
func MustEpisodeNumber(s string) EpisodeNumber {
	n, err := ParseEpisodeNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n EpisodeNumber) Decimal() decimal.Decimal {
	return decimal.New(int64(n), -numberScale)
}

// String renders the shortest decimal form: 100, 100.5, 7.25.
func (n EpisodeNumber) String() string {
	return n.Decimal().String()
}

func (n EpisodeNumber) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *EpisodeNumber) UnmarshalJSON(data []byte) error {
	parsed, err := ParseEpisodeNumber(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Value stores the number as its scaled integer.
func (n EpisodeNumber) Value() (driver.Value, error) {
	return int64(n), nil
}

func (n *EpisodeNumber) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*n = EpisodeNumber(v)
	case int32:
		*n = EpisodeNumber(v)
	case []byte:
		i, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan episode number: %w", err)
		}
		*n = EpisodeNumber(i)
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan episode number: %w", err)
		}
		*n = EpisodeNumber(i)
	case nil:
		return fmt.Errorf("scan episode number: NULL value")
	default:
		return fmt.Errorf("scan episode number: unsupported type %T", src)
	}
	return nil
}
