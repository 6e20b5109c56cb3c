package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Arrays whose order carries no meaning for cache identity, by JSON path.
var orderInsensitivePaths = map[string]struct{}{
	"locations":         {},
	"twin.ratios":       {},
	"twin.vessel_names": {},
}

// CanonicalScenario renders sc as a deterministic string: object keys are
// sorted recursively, order-insensitive arrays are sorted, and numbers are
// printed in their shortest decimal form.
func CanonicalScenario(sc domain.Scenario) (string, error) {
	raw, err := json.Marshal(sc)
	if err != nil {
		return "", fmt.Errorf("canonical scenario: marshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("canonical scenario: decode: %w", err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, "", v); err != nil {
		return "", fmt.Errorf("canonical scenario: %w", err)
	}
	return buf.String(), nil
}

// RunKey is the sha256 hex digest of the canonical scenario.
func RunKey(sc domain.Scenario) (string, error) {
	canon, err := CanonicalScenario(sc)
	if err != nil {
		return "", fmt.Errorf("run key: %w", err)
	}
	sum := sha256.Sum256([]byte(canon))
	return hex.EncodeToString(sum[:]), nil
}

func writeCanonical(buf *bytes.Buffer, path string, v any) error {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			if err := writeCanonical(buf, joinPath(path, k), t[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			var sub bytes.Buffer
			if err := writeCanonical(&sub, path, item); err != nil {
				return err
			}
			items = append(items, sub.String())
		}
		if _, ok := orderInsensitivePaths[path]; ok {
			sort.Strings(items)
		}
		buf.WriteByte('[')
		buf.WriteString(strings.Join(items, ","))
		buf.WriteByte(']')

	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return fmt.Errorf("number at %q: %w", path, err)
		}
		buf.WriteString(d.String())

	case string:
		writeString(buf, t)

	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case nil:
		buf.WriteString("null")

	default:
		return fmt.Errorf("unsupported value %T at %q", v, path)
	}

	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
