package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/tds-challan-extractor/dto"
)

// FieldSpec pairs a challan column with its alternative patterns.
// Patterns are tried in order and the first one that matches wins.
type FieldSpec struct {
	Name     string
	Monetary bool
	Patterns []*regexp.Regexp
}

func newFieldSpec(name string, monetary bool, patterns ...string) FieldSpec {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return FieldSpec{Name: name, Monetary: monetary, Patterns: compiled}
}

// challanFieldSpecs is the pattern registry, most specific template first.
// The shapes are tuned against real challan layouts (OLTAS, TIN-NSDL, bank e-receipts);
// do not loosen them without new samples.
var challanFieldSpecs = []FieldSpec{
	newFieldSpec("Challan No", false,
		`Challan\s*No\s*:\s*(\d+)`,
		`CIN\s*:\s*(\d+[A-Z]+)`,
		`Challan\s*Number\s*:\s*(\d+)`,
	),
	newFieldSpec("Date of Deposit", false,
		`Date\s*of\s*Deposit\s*:\s*(\d{1,2}-[A-Za-z]{3}-\d{4})`,
		`Date\s*of\s*Deposit\s*:\s*(\d{1,2}/\d{1,2}/\d{4})`,
		`Tender\s*Date\s*:\s*(\d{1,2}/\d{1,2}/\d{4})`,
	),
	newFieldSpec("BSR Code", false,
		`BSR\s*code\s*:\s*(\d{7})`,
		`BSR\s*Code\s*:\s*(\d{7})`,
		`BSR\s*:\s*(\d{7})`,
	),
	newFieldSpec("Amount", true,
		`Amount\s*\(in\s*Rs\.\)\s*:\s*₹\s*([\d,]+)`,
		`Total\s*\([A-Z+]+\)\s*₹\s*([\d,]+)`,
		`Amount\s*:\s*₹\s*([\d,]+)`,
	),
	newFieldSpec("Tax", true,
		`A\s*Tax\s*₹\s*([\d,]+)`,
		`Tax\s*₹\s*([\d,]+)`,
		`Income\s*Tax\s*₹\s*([\d,]+)`,
	),
	newFieldSpec("Surcharge", true,
		`B\s*Surcharge\s*₹\s*([\d,]+)`,
		`Surcharge\s*₹\s*([\d,]+)`,
	),
	newFieldSpec("Cess", true,
		`C\s*Cess\s*₹\s*([\d,]+)`,
		`Cess\s*₹\s*([\d,]+)`,
		`Education\s*Cess\s*₹\s*([\d,]+)`,
	),
	newFieldSpec("Interest", true,
		`D\s*Interest\s*₹\s*([\d,]+)`,
		`Interest\s*₹\s*([\d,]+)`,
	),
	newFieldSpec("Penalty", true,
		`E\s*Penalty\s*₹\s*([\d,]+)`,
		`Penalty\s*₹\s*([\d,]+)`,
	),
	newFieldSpec("Fee under 234E", true,
		`F\s*Fee\s*under\s*section\s*234E\s*₹\s*([\d,]+)`,
		`Fee\s*under\s*section\s*234E\s*₹\s*([\d,]+)`,
		`234E\s*₹\s*([\d,]+)`,
	),
	newFieldSpec("TAN", false,
		`TAN\s*:\s*([A-Z0-9]+)`,
		`TAN\s*Number\s*:\s*([A-Z0-9]+)`,
	),
	newFieldSpec("Nature of Payment", false,
		`Nature\s*of\s*Payment\s*:\s*(\d+[A-Z]*)`,
		`Section\s*:\s*(\d+[A-Z]*)`,
	),
	newFieldSpec("Assessment Year", false,
		`Assessment\s*Year\s*:\s*(\d{4}-\d{2})`,
		`AY\s*:\s*(\d{4}-\d{2})`,
	),
	newFieldSpec("Financial Year", false,
		`Financial\s*Year\s*:\s*(\d{4}-\d{2})`,
		`FY\s*:\s*(\d{4}-\d{2})`,
	),
}

// ChallanFieldSpecs returns a copy of the registry in declaration order.
func ChallanFieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(challanFieldSpecs))
	copy(out, challanFieldSpecs)
	return out
}

// ChallanFieldNames returns the column names in declaration order.
func ChallanFieldNames() []string {
	names := make([]string, 0, len(challanFieldSpecs))
	for _, spec := range challanFieldSpecs {
		names = append(names, spec.Name)
	}
	return names
}

// ExtractChallanFields extracts every declared field from normalized challan text.
// A field that matches nothing yields an empty value.
func ExtractChallanFields(text string) []dto.FieldValue {
	values := make([]dto.FieldValue, 0, len(challanFieldSpecs))
	for _, spec := range challanFieldSpecs {
		value := extractField(text, spec.Patterns)
		if spec.Monetary {
			value = cleanAmount(value)
		}
		values = append(values, dto.FieldValue{Name: spec.Name, Value: value})
	}
	return values
}

// extractField returns the first capture of the first matching pattern.
// "0" is treated as absent.
func extractField(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if matches := re.FindStringSubmatch(text); len(matches) > 1 {
			value := strings.TrimSpace(matches[1])
			if value == "0" {
				return ""
			}
			return value
		}
	}
	return ""
}

var amountNoise = regexp.MustCompile(`[,\s]`)

// cleanAmount strips thousands separators and whitespace: "1,23,456" -> "123456".
func cleanAmount(amount string) string {
	if amount == "" {
		return ""
	}
	return amountNoise.ReplaceAllString(amount, "")
}
