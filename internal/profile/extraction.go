package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed extraction.schema.json
var extractionSchemaJSON []byte

// extractionSchema only admits scalars for the keys Extraction knows about.
var extractionSchema = mustSchema(extractionSchemaJSON)

func mustSchema(data []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("profile: extraction schema is invalid: %v", err))
	}
	return schema
}

// Extraction is the flat answer the document-extraction service returns for
// an uploaded resume or form.
type Extraction struct {
	FirstName             string `mapstructure:"first_name"`
	LastName              string `mapstructure:"last_name"`
	Email                 string `mapstructure:"email"`
	Phone                 string `mapstructure:"phone"`
	Address               string `mapstructure:"address"`
	PostalCode            string `mapstructure:"postal_code"`
	Province              string `mapstructure:"province"`
	DateOfBirth           string `mapstructure:"date_of_birth"`
	Gender                string `mapstructure:"gender"`
	CitizenshipStatus     string `mapstructure:"citizenship_status"`
	HouseholdSize         string `mapstructure:"household_size"`
	FamilyComposition     string `mapstructure:"family_composition"`
	AnnualFamilyNetIncome string `mapstructure:"annual_family_net_income"`
	GuardianName          string `mapstructure:"guardian_name"`
	GuardianPhone         string `mapstructure:"guardian_phone"`
	GuardianEmail         string `mapstructure:"guardian_email"`
	HighestEducation      string `mapstructure:"highest_education"`
	SchoolName            string `mapstructure:"school_name"`
	GraduationDate        string `mapstructure:"graduation_date"`
	TradeSchoolName       string `mapstructure:"trade_school_name"`
	TradeProgramName      string `mapstructure:"trade_program_name"`
	TradeGraduationDate   string `mapstructure:"trade_graduation_date"`
	Trade                 string `mapstructure:"trade"`
	ApprenticeshipLevel   string `mapstructure:"apprenticeship_level"`
}

// ParseExtraction decodes the raw service answer. Markdown code fences around
// the JSON object are tolerated.
func ParseExtraction(raw string) (*Extraction, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("extraction answer is empty")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse extraction answer: %w", err)
	}

	if err := ValidateExtraction(data); err != nil {
		return nil, err
	}

	return DecodeExtraction(data)
}

// ValidateExtraction rejects answers whose known keys hold lists or objects.
func ValidateExtraction(data map[string]any) error {
	result, err := extractionSchema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return fmt.Errorf("validate extraction answer: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("extraction answer does not match schema: %s", strings.Join(errs, "; "))
	}

	return nil
}

// DecodeExtraction maps an already decoded answer onto Extraction. Values of
// any scalar type are accepted and trimmed.
func DecodeExtraction(data map[string]any) (*Extraction, error) {
	var ex Extraction

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringHook,
		Result:     &ex,
	})
	if err != nil {
		return nil, fmt.Errorf("build extraction decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode extraction answer: %w", err)
	}

	return &ex, nil
}

// ApplyTo overwrites every form field of p with the extracted values, empty
// ones included. The profile picture is left alone.
func (e *Extraction) ApplyTo(p Profile) Profile {
	p.Name = strings.TrimSpace(e.FirstName + " " + e.LastName)
	p.Email = e.Email
	p.Phone = e.Phone
	p.Address = e.Address
	p.PostalCode = e.PostalCode
	p.Province = e.Province
	p.DateOfBirth = e.DateOfBirth
	p.Gender = e.Gender
	p.CitizenshipStatus = e.CitizenshipStatus
	p.HouseholdSize = e.HouseholdSize
	p.FamilyComposition = e.FamilyComposition
	p.AnnualFamilyNetIncome = e.AnnualFamilyNetIncome
	p.GuardianName = e.GuardianName
	p.GuardianPhone = e.GuardianPhone
	p.GuardianEmail = e.GuardianEmail
	p.HighestEducation = e.HighestEducation
	p.HighSchoolName = e.SchoolName
	p.GraduationDate = e.GraduationDate
	p.TradeSchoolName = e.TradeSchoolName
	p.TradeProgramName = e.TradeProgramName
	p.TradeGraduationDate = e.TradeGraduationDate
	p.Trade = e.Trade
	p.ApprenticeshipLevel = NormalizeApprenticeshipLevel(e.ApprenticeshipLevel)
	return p
}

// NormalizeApprenticeshipLevel maps the many ways documents spell a level onto
// the labels the catalog matches against.
func NormalizeApprenticeshipLevel(value string) string {
	lower := strings.ToLower(value)
	switch {
	case lower == "":
		return ""
	case containsAny(lower, "journeyman", "red seal"):
		return "Journeyman"
	case containsAny(lower, "fourth", "level 4", "4th"):
		return "Level 4"
	case containsAny(lower, "third", "level 3", "3rd"):
		return "Level 3"
	case containsAny(lower, "second", "level 2", "2nd"):
		return "Level 2"
	case containsAny(lower, "first", "level 1", "1st"):
		return "Level 1"
	default:
		return strings.TrimSpace(value)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
