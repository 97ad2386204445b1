package passengers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() PassengerForm {
	return PassengerForm{
		FirstName:   "Asha",
		LastName:    "Verma",
		Age:         34,
		Gender:      "Female",
		Nationality: "Indian",
	}
}

func TestValidateFormsAccepts(t *testing.T) {
	assert.NoError(t, ValidateForms([]PassengerForm{validForm(), validForm()}, 2))
}

func TestValidateFormsPassportOptional(t *testing.T) {
	form := validForm()
	form.PassportNumber = ""
	assert.NoError(t, ValidateForms([]PassengerForm{form}, 1))
}

func TestValidateFormsCountMismatch(t *testing.T) {
	err := ValidateForms([]PassengerForm{validForm()}, 2)
	assert.ErrorIs(t, err, ErrFormCountMismatch)
}

func TestValidateFormsFirstViolationWins(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*PassengerForm)
		wantField string
	}{
		{"missing first name", func(f *PassengerForm) { f.FirstName = "" }, "FirstName"},
		{"missing last name", func(f *PassengerForm) { f.LastName = "" }, "LastName"},
		{"zero age", func(f *PassengerForm) { f.Age = 0 }, "Age"},
		{"age too high", func(f *PassengerForm) { f.Age = 121 }, "Age"},
		{"bad gender", func(f *PassengerForm) { f.Gender = "N/A" }, "Gender"},
		{"missing nationality", func(f *PassengerForm) { f.Nationality = "" }, "Nationality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := ValidateForms([]PassengerForm{form}, 1)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, 0, verr.Index)
		})
	}
}

func TestValidateFormsRejectsWhitespaceOnlyFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*PassengerForm)
		wantField string
	}{
		{"blank first name", func(f *PassengerForm) { f.FirstName = "   " }, "FirstName"},
		{"blank last name", func(f *PassengerForm) { f.LastName = " \t" }, "LastName"},
		{"blank nationality", func(f *PassengerForm) { f.Nationality = "\t " }, "Nationality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := ValidateForms([]PassengerForm{form}, 1)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateFormsTrimsFieldsInPlace(t *testing.T) {
	form := validForm()
	form.FirstName = "  Asha "
	form.PassportNumber = " Z1234567 "
	forms := []PassengerForm{form}

	require.NoError(t, ValidateForms(forms, 1))
	assert.Equal(t, "Asha", forms[0].FirstName)
	assert.Equal(t, "Z1234567", forms[0].PassportNumber)
}

func TestValidateFormsFieldOrderWithinForm(t *testing.T) {
	// several broken fields: the earliest one on the form is reported
	form := validForm()
	form.FirstName = ""
	form.Age = 0
	form.Gender = "???"

	err := ValidateForms([]PassengerForm{form}, 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "FirstName", verr.Field)
}

func TestValidateFormsReportsFirstBadPassenger(t *testing.T) {
	bad := validForm()
	bad.Age = 200

	err := ValidateForms([]PassengerForm{validForm(), bad}, 2)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)
	assert.Contains(t, verr.Error(), "passenger 2")
}
