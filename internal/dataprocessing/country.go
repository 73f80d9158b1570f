package dataprocessing

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "tmanalyzer/internal/errors"
)

// countryLabelRules constrains resolved labels: they end up in file names,
// SQLite rows and chart legends.
const countryLabelRules = "required,max=64,excludesall=/\\"

// CountryResolver derives the country label of an input file from its name.
type CountryResolver struct {
	aliases  map[string]string
	validate *validator.Validate
}

// NewCountryResolver builds a resolver with an alias table such as KR→한국.
// Alias keys are matched case-insensitively.
func NewCountryResolver(aliases map[string]string) *CountryResolver {
	normalized := make(map[string]string, len(aliases))
	for k, v := range aliases {
		normalized[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return &CountryResolver{
		aliases:  normalized,
		validate: validator.New(),
	}
}

// Resolve returns the country label for a file name such as "KR_DATA.xlsx" or
// "한국DATA.xlsx". The prefix before the first underscore is looked up in the
// alias table and used verbatim when no alias exists.
func (r *CountryResolver) Resolve(fileName string) (string, error) {
	prefix := FilePrefix(fileName)

	label := prefix
	if alias, ok := r.aliases[strings.ToUpper(prefix)]; ok {
		label = alias
	}

	if err := r.validate.Var(label, countryLabelRules); err != nil {
		return "", fmt.Errorf("%s: %w", fileName,
			apperrors.NewAppError(apperrors.ErrTypeValidation, apperrors.ErrUnknownCountry.Message, err))
	}
	return label, nil
}

// FilePrefix extracts the raw country prefix from a file name: the part before
// the first underscore with any "DATA" suffix and the extension removed.
func FilePrefix(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if idx := strings.Index(base, "_"); idx >= 0 {
		base = base[:idx]
	}
	base = strings.TrimSuffix(base, "DATA")
	return strings.TrimSpace(base)
}
