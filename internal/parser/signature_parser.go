package parser

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
)

// Record is one signature read from a file.  PublicKey is the key as written
// in the file, if any; see ParsePublicKey.
type Record struct {
	ID        string
	Hash      []byte
	Signature *ecdsa.Signature
	PublicKey string
}

// Fields names the columns or keys a parser reads.  Empty names use the
// defaults from DefaultFields.
type Fields struct {
	ID        string
	Message   string
	Hash      string
	R         string
	S         string
	Signature string
	PublicKey string
}

// DefaultFields returns the field names used when none are configured.
func DefaultFields() Fields {
	return Fields{
		ID:        "id",
		Message:   "message",
		Hash:      "z",
		R:         "r",
		S:         "s",
		Signature: "signature",
		PublicKey: "public_key",
	}
}

func (f Fields) withDefaults() Fields {
	def := DefaultFields()
	set := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	set(&f.ID, def.ID)
	set(&f.Message, def.Message)
	set(&f.Hash, def.Hash)
	set(&f.R, def.R)
	set(&f.S, def.S)
	set(&f.Signature, def.Signature)
	set(&f.PublicKey, def.PublicKey)
	return f
}

// SignatureParser reads signature records from a stream.
type SignatureParser interface {
	Parse(r io.Reader) ([]Record, error)
}

// ForFile returns a parser for path based on its extension: CSV for ".csv"
// and JSON otherwise.
func ForFile(path string, fields Fields) SignatureParser {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return &CSVParser{Fields: fields}
	}
	return &JSONParser{Fields: fields}
}

// ParseFile reads the records in path with the parser chosen by ForFile.
func ParseFile(path string, fields Fields) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()
	return ForFile(path, fields).Parse(file)
}

// JSONParser parses a JSON array of objects.
//
// Expected format:
//
//	[
//	  {"message": "...", "r": "...", "s": "..."},
//	  {"z": "0x...", "signature": "3044...", "public_key": "did:key:z..."}
//	]
type JSONParser struct {
	Fields Fields
}

// Parse implements SignatureParser.
func (p *JSONParser) Parse(r io.Reader) ([]Record, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]any
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	f := p.Fields.withDefaults()
	records := make([]Record, 0, len(items))
	for i, item := range items {
		get := func(name string) (string, bool, error) {
			v, ok := item[name]
			if !ok || v == nil {
				return "", false, nil
			}
			switch v := v.(type) {
			case string:
				return v, true, nil
			case json.Number:
				text, err := numberText(v)
				if err != nil {
					return "", false, fmt.Errorf("field %q: %w", name, err)
				}
				return text, true, nil
			}
			return "", false, fmt.Errorf("field %q must be a string or number, got %T", name, v)
		}
		rec, err := buildRecord(f, get)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// CSVParser parses CSV with a header row.
type CSVParser struct {
	Fields Fields
}

// Parse implements SignatureParser.
func (p *CSVParser) Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, col := range header {
		cols[strings.TrimSpace(col)] = i
	}

	f := p.Fields.withDefaults()
	_, hasSig := cols[f.Signature]
	_, hasR := cols[f.R]
	_, hasS := cols[f.S]
	if !hasSig && !(hasR && hasS) {
		return nil, fmt.Errorf("missing required columns: r and s, or signature")
	}

	var records []Record
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		get := func(name string) (string, bool, error) {
			i, ok := cols[name]
			if !ok || i >= len(record) || record[i] == "" {
				return "", false, nil
			}
			return record[i], true, nil
		}
		rec, err := buildRecord(f, get)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// buildRecord assembles a record from field lookups.  The digest is taken
// from the hash field, or else is the SHA-256 of the message field.  The
// signature is taken from r and s, or else from the signature field as 64
// byte [R | S] or DER hex.
func buildRecord(f Fields, get func(string) (string, bool, error)) (Record, error) {
	var rec Record
	for _, name := range []string{f.ID, f.Message, f.Hash, f.R, f.S, f.Signature, f.PublicKey} {
		if _, _, err := get(name); err != nil {
			return rec, err
		}
	}
	lookup := func(name string) (string, bool) {
		v, ok, _ := get(name)
		return v, ok
	}

	rec.ID, _ = lookup(f.ID)
	rec.PublicKey, _ = lookup(f.PublicKey)

	if z, ok := lookup(f.Hash); ok {
		hash, err := parseHash(z)
		if err != nil {
			return rec, fmt.Errorf("failed to parse %s: %w", f.Hash, err)
		}
		rec.Hash = hash
	} else if msg, ok := lookup(f.Message); ok {
		h := sha256.Sum256([]byte(msg))
		rec.Hash = h[:]
	} else {
		return rec, fmt.Errorf("missing %s or %s field", f.Message, f.Hash)
	}

	rStr, hasR := lookup(f.R)
	sStr, hasS := lookup(f.S)
	switch {
	case hasR && hasS:
		r, err := ParseInt(rStr)
		if err != nil {
			return rec, fmt.Errorf("failed to parse %s: %w", f.R, err)
		}
		s, err := ParseInt(sStr)
		if err != nil {
			return rec, fmt.Errorf("failed to parse %s: %w", f.S, err)
		}
		rec.Signature = ecdsa.NewSignature(r, s)
	default:
		encoded, ok := lookup(f.Signature)
		if !ok {
			return rec, fmt.Errorf("missing %s and %s fields, or %s", f.R, f.S, f.Signature)
		}
		sig, err := ParseSignature(encoded)
		if err != nil {
			return rec, err
		}
		rec.Signature = sig
	}
	return rec, nil
}

// ParseSignature decodes a hex signature: 64 bytes are read as [R | S],
// anything else as DER.
func ParseSignature(encoded string) (*ecdsa.Signature, error) {
	b, err := hexDecode(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(b) == ecdsa.CompactSignatureSize {
		return ecdsa.ParseCompactSignature(b)
	}
	return ecdsa.ParseDERSignature(b)
}

// maxDecimalLen is the longest digit string read as decimal.  Longer
// strings of digits are hex, since an R, S or digest written in decimal is
// rarely that short.
const maxDecimalLen = 20

// isHex reports whether a string value is hex: it has a 0x prefix, contains
// hex letters or is longer than maxDecimalLen.
func isHex(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "0x") || strings.ContainsAny(lower, "abcdef") ||
		len(s) > maxDecimalLen
}

// numberText rewrites a JSON number as 0x-prefixed hex so that a long
// decimal number is not taken for hex.
func numberText(n json.Number) (string, error) {
	v, ok := new(big.Int).SetString(n.String(), 10)
	if !ok || v.Sign() < 0 {
		return "", fmt.Errorf("invalid number format: %s", n)
	}
	return "0x" + v.Text(16), nil
}

// ParseInt parses a 256-bit unsigned integer.  Hex values are recognized by
// isHex; anything else is decimal.  Decimal values with more than 20 digits
// must be given as JSON numbers or converted to hex.
func ParseInt(s string) (bigint.U256, error) {
	s = strings.TrimSpace(s)
	if isHex(s) {
		return bigint.FromHex[bigint.W256](s)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return bigint.U256{}, fmt.Errorf("invalid number format: %s", s)
	}
	return bigint.FromBig[bigint.W256](v)
}

// parseHash reads a digest.  Hex keeps its byte length so that digests wider
// than a curve order are truncated correctly; a decimal value is written as
// 32 bytes.
func parseHash(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if isHex(s) {
		return hexDecode(s)
	}
	z, err := ParseInt(s)
	if err != nil {
		return nil, err
	}
	return z.Bytes(), nil
}

// hexDecode decodes a hex string, handling 0x prefix and odd length
func hexDecode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}
