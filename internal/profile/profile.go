// Package profile holds the applicant record the eligibility engine reads.
//
// Every attribute is free text and the empty string means "not provided". The
// surrounding application owns and mutates profiles; the engine only ever sees
// value snapshots.
package profile

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Field names as they appear in stored JSON and in catalog requirement bindings.
const (
	FieldName                  = "name"
	FieldDateOfBirth           = "dateOfBirth"
	FieldGender                = "gender"
	FieldPhone                 = "phone"
	FieldEmail                 = "email"
	FieldProfileImageURI       = "profileImageUri"
	FieldAddress               = "address"
	FieldPostalCode            = "postalCode"
	FieldProvince              = "province"
	FieldCitizenshipStatus     = "citizenshipStatus"
	FieldHouseholdSize         = "householdSize"
	FieldFamilyComposition     = "familyComposition"
	FieldAnnualFamilyNetIncome = "annualFamilyNetIncome"
	FieldGuardianName          = "guardianName"
	FieldGuardianPhone         = "guardianPhone"
	FieldGuardianEmail         = "guardianEmail"
	FieldHighestEducation      = "highestEducation"
	FieldHighSchoolName        = "highSchoolName"
	FieldGraduationDate        = "graduationDate"
	FieldTradeSchoolName       = "tradeSchoolName"
	FieldTradeProgramName      = "tradeProgramName"
	FieldTradeGraduationDate   = "tradeGraduationDate"
	FieldTrade                 = "trade"
	FieldApprenticeshipLevel   = "apprenticeshipLevel"
)

type Profile struct {
	// Basic
	Name            string `json:"name"`
	DateOfBirth     string `json:"dateOfBirth"`
	Gender          string `json:"gender"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ProfileImageURI string `json:"profileImageUri"`
	// Residence
	Address           string `json:"address"`
	PostalCode        string `json:"postalCode"`
	Province          string `json:"province"`
	CitizenshipStatus string `json:"citizenshipStatus"`
	// Household
	HouseholdSize         string `json:"householdSize"`
	FamilyComposition     string `json:"familyComposition"`
	AnnualFamilyNetIncome string `json:"annualFamilyNetIncome"`
	// Guardian
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
	GuardianEmail string `json:"guardianEmail"`
	// Education
	HighestEducation    string `json:"highestEducation"`
	HighSchoolName      string `json:"highSchoolName"`
	GraduationDate      string `json:"graduationDate"`
	TradeSchoolName     string `json:"tradeSchoolName"`
	TradeProgramName    string `json:"tradeProgramName"`
	TradeGraduationDate string `json:"tradeGraduationDate"`
	Trade               string `json:"trade"`
	ApprenticeshipLevel string `json:"apprenticeshipLevel"`
}

type accessor struct {
	name string
	get  func(*Profile) string
	set  func(*Profile, string)
}

// accessors is kept in declaration order; Fields and Completion depend on it.
var accessors = []accessor{
	{FieldName, func(p *Profile) string { return p.Name }, func(p *Profile, v string) { p.Name = v }},
	{FieldDateOfBirth, func(p *Profile) string { return p.DateOfBirth }, func(p *Profile, v string) { p.DateOfBirth = v }},
	{FieldGender, func(p *Profile) string { return p.Gender }, func(p *Profile, v string) { p.Gender = v }},
	{FieldPhone, func(p *Profile) string { return p.Phone }, func(p *Profile, v string) { p.Phone = v }},
	{FieldEmail, func(p *Profile) string { return p.Email }, func(p *Profile, v string) { p.Email = v }},
	{FieldProfileImageURI, func(p *Profile) string { return p.ProfileImageURI }, func(p *Profile, v string) { p.ProfileImageURI = v }},
	{FieldAddress, func(p *Profile) string { return p.Address }, func(p *Profile, v string) { p.Address = v }},
	{FieldPostalCode, func(p *Profile) string { return p.PostalCode }, func(p *Profile, v string) { p.PostalCode = v }},
	{FieldProvince, func(p *Profile) string { return p.Province }, func(p *Profile, v string) { p.Province = v }},
	{FieldCitizenshipStatus, func(p *Profile) string { return p.CitizenshipStatus }, func(p *Profile, v string) { p.CitizenshipStatus = v }},
	{FieldHouseholdSize, func(p *Profile) string { return p.HouseholdSize }, func(p *Profile, v string) { p.HouseholdSize = v }},
	{FieldFamilyComposition, func(p *Profile) string { return p.FamilyComposition }, func(p *Profile, v string) { p.FamilyComposition = v }},
	{FieldAnnualFamilyNetIncome, func(p *Profile) string { return p.AnnualFamilyNetIncome }, func(p *Profile, v string) { p.AnnualFamilyNetIncome = v }},
	{FieldGuardianName, func(p *Profile) string { return p.GuardianName }, func(p *Profile, v string) { p.GuardianName = v }},
	{FieldGuardianPhone, func(p *Profile) string { return p.GuardianPhone }, func(p *Profile, v string) { p.GuardianPhone = v }},
	{FieldGuardianEmail, func(p *Profile) string { return p.GuardianEmail }, func(p *Profile, v string) { p.GuardianEmail = v }},
	{FieldHighestEducation, func(p *Profile) string { return p.HighestEducation }, func(p *Profile, v string) { p.HighestEducation = v }},
	{FieldHighSchoolName, func(p *Profile) string { return p.HighSchoolName }, func(p *Profile, v string) { p.HighSchoolName = v }},
	{FieldGraduationDate, func(p *Profile) string { return p.GraduationDate }, func(p *Profile, v string) { p.GraduationDate = v }},
	{FieldTradeSchoolName, func(p *Profile) string { return p.TradeSchoolName }, func(p *Profile, v string) { p.TradeSchoolName = v }},
	{FieldTradeProgramName, func(p *Profile) string { return p.TradeProgramName }, func(p *Profile, v string) { p.TradeProgramName = v }},
	{FieldTradeGraduationDate, func(p *Profile) string { return p.TradeGraduationDate }, func(p *Profile, v string) { p.TradeGraduationDate = v }},
	{FieldTrade, func(p *Profile) string { return p.Trade }, func(p *Profile, v string) { p.Trade = v }},
	{FieldApprenticeshipLevel, func(p *Profile) string { return p.ApprenticeshipLevel }, func(p *Profile, v string) { p.ApprenticeshipLevel = v }},
}

var accessorsByName = func() map[string]accessor {
	m := make(map[string]accessor, len(accessors))
	for _, a := range accessors {
		m[a.name] = a
	}
	return m
}()

// Default returns the profile a new user starts with.
func Default() Profile {
	return Profile{}
}

// Fields returns every field name in declaration order.
func Fields() []string {
	names := make([]string, 0, len(accessors))
	for _, a := range accessors {
		names = append(names, a.name)
	}
	return names
}

// IsField reports whether name is a known profile field.
func IsField(name string) bool {
	_, ok := accessorsByName[name]
	return ok
}

// Value returns the value of the named field.
func (p Profile) Value(field string) (string, bool) {
	a, ok := accessorsByName[field]
	if !ok {
		return "", false
	}
	return a.get(&p), true
}

// With returns a copy of p with the named field set to value.
func (p Profile) With(field, value string) (Profile, error) {
	a, ok := accessorsByName[field]
	if !ok {
		return p, fmt.Errorf("unknown profile field %q", field)
	}
	a.set(&p, value)
	return p, nil
}

// Completion is the share of form fields holding a value. The picture is not
// part of any form section and does not count.
func (p Profile) Completion() float64 {
	total, filled := 0, 0
	for _, a := range accessors {
		if a.name == FieldProfileImageURI {
			continue
		}
		total++
		if a.get(&p) != "" {
			filled++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}

// FromMap hydrates the default profile with whatever a stored JSON object
// carries. Unknown keys are ignored, strings are kept verbatim and other values
// are coerced to text the same way extraction answers are (true reads "true").
func FromMap(data map[string]any) (Profile, error) {
	p := Default()
	if len(data) == 0 {
		return p, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		DecodeHook: storedValueHook,
		Result:     &p,
	})
	if err != nil {
		return p, fmt.Errorf("build profile decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return Default(), fmt.Errorf("decode profile: %w", err)
	}

	return p, nil
}

// storedValueHook is stringHook without trimming stored strings.
func storedValueHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String {
		return data, nil
	}
	return stringHook(from, to, data)
}

// stringHook turns any scalar headed for a string field into its trimmed text.
func stringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	return coerceString(data), nil
}
